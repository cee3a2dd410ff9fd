package models

// IDScheme selects how transaction identifiers are built.
type IDScheme string

// Supported identifier schemes
const (
	IDSchemeTimestamp IDScheme = "timestamp" // TXN<unix ms>_<4 digits>
	IDSchemeUUID      IDScheme = "uuid"      // random v4 UUID drawn from the seeded source
)

// TypeProfile holds the weight and amount bounds of one transaction type.
type TypeProfile struct {
	Type      TransactionType `json:"type" validate:"required,oneof=transfer payment withdrawal deposit"`
	Weight    float64         `json:"weight" validate:"gte=0,lte=1"`
	MinAmount int64           `json:"min_amount" validate:"gt=0"`
	MaxAmount int64           `json:"max_amount" validate:"gtefield=MinAmount"`
}

// GeneratorConfig describes the universe the generator draws from.
type GeneratorConfig struct {
	Cities       []string      `json:"cities" validate:"required,min=1,dive,required"`
	Operators    []string      `json:"operators" validate:"required,min=1,dive,required"`
	UserPrefixes []string      `json:"user_prefixes" validate:"required,min=1,dive,len=2,number"`
	Types        []TypeProfile `json:"types" validate:"required,min=1,dive"`
	AmountSigma  float64       `json:"amount_sigma" validate:"gt=0"`
	LookbackDays int           `json:"lookback_days" validate:"gt=0,lte=36500"`
	IDScheme     IDScheme      `json:"id_scheme" validate:"omitempty,oneof=timestamp uuid"`
	UniqueIDs    bool          `json:"unique_ids"`
}

// DefaultGeneratorConfig returns the Senegalese mobile-money defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Cities:       []string{"Dakar", "Thiès", "Saint-Louis", "Kaolack", "Ziguinchor"},
		Operators:    []string{"Orange Money", "Wave", "Free Money", "Wizall"},
		UserPrefixes: []string{"77", "78", "76", "70", "75"},
		Types: []TypeProfile{
			{Type: TypeTransfer, Weight: 0.45, MinAmount: 1000, MaxAmount: 100000},
			{Type: TypePayment, Weight: 0.30, MinAmount: 500, MaxAmount: 50000},
			{Type: TypeWithdrawal, Weight: 0.20, MinAmount: 5000, MaxAmount: 200000},
			{Type: TypeDeposit, Weight: 0.05, MinAmount: 10000, MaxAmount: 500000},
		},
		AmountSigma:  0.8,
		LookbackDays: 7,
		IDScheme:     IDSchemeTimestamp,
	}
}
