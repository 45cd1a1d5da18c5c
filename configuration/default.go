package configuration

func Default() Configuration {
	return Configuration{
		HttpAddr:          "127.0.0.1:8080",
		Statics:           "",
		ShowBanner:        true,
		ShowConfig:        false,
		EnableCompression: true,
		InitialCapacity:   0,
	}
}
