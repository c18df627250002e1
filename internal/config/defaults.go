package config

// DefaultModelName is the model used when a request omits one.
const DefaultModelName = "CioWindows"

// ApplyDefaults sets default values for any zero values in cfg. With no
// models configured, the full default set is used: the local windows and
// keywords engines plus the two fingerprint engines (which require
// credentials at startup).
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Corpus.DataPath == "" {
		cfg.Corpus.DataPath = "./data/corpus.csv"
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModelName
	}
	if len(cfg.Models) == 0 {
		cfg.Models = DefaultModels()
	}
	for i := range cfg.Models {
		applyModelDefaults(&cfg.Models[i])
	}
}

// DefaultModels returns the model set served when none is configured.
func DefaultModels() []ModelConfig {
	return []ModelConfig{
		{Name: "CioWindows", Variant: VariantWindows},
		{Name: "Keywords", Variant: VariantKeywords},
		{Name: "CioWordFingerprint", Variant: VariantFingerprint,
			Fingerprint: &FingerprintConfig{Mode: "word"}},
		{Name: "CioDocumentFingerprint", Variant: VariantFingerprint,
			Fingerprint: &FingerprintConfig{Mode: "document"}},
	}
}

func applyModelDefaults(m *ModelConfig) {
	switch m.Variant {
	case VariantWindows:
		if m.Windows == nil {
			m.Windows = &WindowsConfig{}
		}
		if m.Windows.WindowSize == 0 {
			m.Windows.WindowSize = 10
		}
		if m.Windows.WindowOverlap == 0 {
			m.Windows.WindowOverlap = 5
		}
	case VariantFingerprint:
		if m.Fingerprint == nil {
			m.Fingerprint = &FingerprintConfig{}
		}
		if m.Fingerprint.Mode == "" {
			m.Fingerprint.Mode = "word"
		}
		if m.Fingerprint.Endpoint == "" {
			m.Fingerprint.Endpoint = "https://api.cortical.io/rest"
		}
		if m.Fingerprint.RetinaEnv == "" {
			m.Fingerprint.RetinaEnv = "FLUENT_RETINA_ID"
		}
		if m.Fingerprint.APIKeyEnv == "" {
			m.Fingerprint.APIKeyEnv = "CORTICAL_API_KEY"
		}
		if m.Fingerprint.TimeoutSecs == 0 {
			m.Fingerprint.TimeoutSecs = 30
		}
	}
}
