package types

// Severity is the ordered urgency tag attached to an Alert.
// Red is the most urgent, green the least.
type Severity string

const (
	SeverityRed    Severity = "red"
	SeverityOrange Severity = "orange"
	SeverityYellow Severity = "yellow"
	SeverityGreen  Severity = "green"
)

// Rank returns the numeric position of the severity in the total order
// red > orange > yellow > green. Lower rank means more urgent.
func (s Severity) Rank() int {
	switch s {
	case SeverityRed:
		return 0
	case SeverityOrange:
		return 1
	case SeverityYellow:
		return 2
	case SeverityGreen:
		return 3
	default:
		return 4
	}
}

// IsCritical reports whether the severity is red or orange. The alert rule
// engine appends the favorable fallback only when no critical alert fired.
func (s Severity) IsCritical() bool {
	return s == SeverityRed || s == SeverityOrange
}

// AlertCategory identifies the rule family that produced an alert.
// At most one alert per category appears in a single evaluation.
type AlertCategory string

const (
	AlertHeatwave   AlertCategory = "heatwave"
	AlertHeavyRain  AlertCategory = "heavy_rain"
	AlertDrought    AlertCategory = "drought"
	AlertFrost      AlertCategory = "frost"
	AlertStrongWind AlertCategory = "strong_wind"
	AlertSpraying   AlertCategory = "spraying_conditions"
	AlertFavorable  AlertCategory = "favorable"
)

// WindBand classifies average wind speed for spraying suitability.
type WindBand string

const (
	WindOptimal    WindBand = "optimal"
	WindModerate   WindBand = "moderate"
	WindHigh       WindBand = "high"
	WindUnsuitable WindBand = "unsuitable"
)

// SprayingAdvice is the categorical spraying recommendation.
type SprayingAdvice string

const (
	SprayRecommended    SprayingAdvice = "recommended"
	SprayCaution        SprayingAdvice = "caution"
	SprayNotRecommended SprayingAdvice = "not_recommended"
)

// IrrigationAdvice is the categorical irrigation recommendation.
type IrrigationAdvice string

const (
	IrrigationIncrease IrrigationAdvice = "increase"
	IrrigationDelay    IrrigationAdvice = "delay"
	IrrigationDecrease IrrigationAdvice = "decrease"
	IrrigationProceed  IrrigationAdvice = "proceed"
)

// FieldOpsBand classifies overall field-operation suitability.
type FieldOpsBand string

const (
	FieldOpsExcellent FieldOpsBand = "excellent"
	FieldOpsGood      FieldOpsBand = "good"
	FieldOpsModerate  FieldOpsBand = "moderate"
	FieldOpsPoor      FieldOpsBand = "poor"
)
