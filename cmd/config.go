package cmd

// Config carries the environment settings of the service.
type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	KafkaHost               string
	KafkaChangeFeedTopic    string
	PushGatewayURL          string
	LabPortalURL            string
	SlaConfirmationWindowHr int
	TxTimeoutSec            int
}
