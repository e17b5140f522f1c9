package cmd

// Config carries every externally provided setting. Values come from the
// environment; main fills the struct and hands it to the composition root.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	DirectoryServiceURL    string
	DirectoryServiceAPIKey string
	GeoServiceURL          string
	GeoServiceAPIKey       string
	BillingServiceURL      string
	BillingServiceAPIKey   string
	MessagingServiceURL    string
	MessagingServiceAPIKey string

	LogFile string
}
