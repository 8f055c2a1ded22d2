package fixtures

// Defaults for generation.
const (
	DefaultSeed            = 30
	DefaultRaggedEvery     = 97
	DefaultNonNumericEvery = 89
)

// File permission constants.
const (
	dirPermission  = 0o755
	filePermission = 0o644
)

// Scale ranges of the O*NET tables.
const (
	importanceMin = 1.0
	importanceMax = 5.0
	levelMax      = 7.0
	extentMin     = 1.0
	extentMax     = 7.0
)

// unclaimedCodes are occupation codes no built-in profession uses.
var unclaimedCodes = []string{"53-7062.00", "35-2014.00", "47-2061.00"}
