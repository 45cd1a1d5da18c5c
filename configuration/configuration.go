package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	HttpsEnabled      bool   `usage:"serve https"`
	HttpsSelfsigned   bool   `usage:"use a self-signed certificate generated on start"`
	Statics           string `usage:"statics directory, nothing is served when empty"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
	EnableCompression bool   `usage:"gzip responses when the client accepts it"`
	InitialCapacity   int    `usage:"document slots reserved by new collections"`
	ApiKey            string `usage:"require this X-Api-Key header, disabled when empty"`
	ApiSecret         string `usage:"X-Api-Secret header that goes with the api key"`
}
