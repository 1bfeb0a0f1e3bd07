package advisory

import (
	"fmt"
	"strings"

	"agrismart/internal/types"
)

// Supported advisory languages.
const (
	LangEnglish = "en"
	LangNepali  = "ne"
)

// SupportedLanguage reports whether lang is a language the advisory-text
// generator can produce.
func SupportedLanguage(lang string) bool {
	return lang == LangEnglish || lang == LangNepali
}

// Advice is the generated advisory text for one location and language.
type Advice struct {
	LocationID   string `json:"locationId"`
	LocationName string `json:"locationName"`
	Language     string `json:"language"`
	Text         string `json:"text"`
}

// ComposeAdvice renders a deterministic advisory summary from a weather
// result: the most urgent alert's recommendation followed by the irrigation
// and spraying guidance. The output is stable for a given result, which
// makes it safe to memoize per (locationID, language).
func ComposeAdvice(result *types.WeatherResult, lang string) Advice {
	var b strings.Builder

	top := result.Alerts[0]
	switch lang {
	case LangNepali:
		b.WriteString(fmt.Sprintf("%s: %s। ", result.LocationName, nepaliAlertLine(top)))
		b.WriteString(nepaliIrrigationLine(result.AgriculturalMetrics.Irrigation))
		b.WriteString(" ")
		b.WriteString(nepaliSprayingLine(result.AgriculturalMetrics.Spraying))
	default:
		b.WriteString(fmt.Sprintf("%s: %s. ", result.LocationName, top.Message))
		b.WriteString(top.Recommendation)
		b.WriteString(". ")
		b.WriteString(englishIrrigationLine(result.AgriculturalMetrics.Irrigation))
		b.WriteString(" ")
		b.WriteString(englishSprayingLine(result.AgriculturalMetrics.Spraying))
	}

	return Advice{
		LocationID:   result.LocationID,
		LocationName: result.LocationName,
		Language:     lang,
		Text:         b.String(),
	}
}

func englishIrrigationLine(advice types.IrrigationAdvice) string {
	switch advice {
	case types.IrrigationIncrease:
		return "Increase irrigation: soil moisture is low or heat stress is likely."
	case types.IrrigationDelay:
		return "Delay irrigation: soil is saturated or heavy rain is expected."
	case types.IrrigationDecrease:
		return "Reduce irrigation: soil moisture is above target."
	default:
		return "Continue the normal irrigation schedule."
	}
}

func englishSprayingLine(advice types.SprayingAdvice) string {
	switch advice {
	case types.SprayRecommended:
		return "Conditions are suitable for spraying."
	case types.SprayCaution:
		return "Spray with caution; wind is close to the safe limit."
	default:
		return "Spraying is not recommended right now."
	}
}

func nepaliAlertLine(a types.Alert) string {
	switch a.Category {
	case types.AlertHeatwave:
		return "अत्यधिक गर्मीको चेतावनी, बिहान वा साँझ मात्र सिँचाइ गर्नुहोस्"
	case types.AlertHeavyRain:
		return "भारी वर्षाको सम्भावना, खेतको निकास सफा गर्नुहोस्"
	case types.AlertDrought:
		return "खडेरीको अवस्था, सिँचाइलाई प्राथमिकता दिनुहोस्"
	case types.AlertFrost:
		return "तुषारोको जोखिम, बिरुवा राति छोप्नुहोस्"
	case types.AlertStrongWind:
		return "तेज हावा, छर्कने काम नगर्नुहोस्"
	case types.AlertSpraying:
		return "छर्कनका लागि उपयुक्त समय"
	default:
		return "मौसम खेतीका लागि अनुकूल छ"
	}
}

func nepaliIrrigationLine(advice types.IrrigationAdvice) string {
	switch advice {
	case types.IrrigationIncrease:
		return "सिँचाइ बढाउनुहोस्।"
	case types.IrrigationDelay:
		return "सिँचाइ पर सार्नुहोस्।"
	case types.IrrigationDecrease:
		return "सिँचाइ घटाउनुहोस्।"
	default:
		return "सामान्य सिँचाइ जारी राख्नुहोस्।"
	}
}

func nepaliSprayingLine(advice types.SprayingAdvice) string {
	switch advice {
	case types.SprayRecommended:
		return "छर्कनका लागि मौसम उपयुक्त छ।"
	case types.SprayCaution:
		return "होसियारीसाथ छर्कनुहोस्।"
	default:
		return "अहिले छर्कन सिफारिस गरिँदैन।"
	}
}
