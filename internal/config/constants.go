package config

const SourceFileExt = ".eq"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".eq", ".equa"}

// ConfigFileName is looked up in the working directory unless a path is
// given explicitly.
const ConfigFileName = "equa.yaml"

// Numeric solver defaults. Epsilon separates "numerically zero" from
// signal: flat-derivative detection and root deduplication both use it.
const (
	Epsilon        = 1e-10
	SolveTolerance = 1e-6
	MaxIterations  = 100

	ScanStart = -10.0
	ScanEnd   = 10.0
	ScanStep  = 0.1
)

// NewtonSeeds are the fixed initial guesses tried by the numeric
// fallback, in order. Discovery order of roots (and therefore result
// naming) follows this order.
var NewtonSeeds = []float64{-10, -5, -1, 0, 1, 5, 10}

// Built-in function names
const (
	SinFuncName  = "sin"
	CosFuncName  = "cos"
	LogFuncName  = "log"
	SqrtFuncName = "sqrt"
)
