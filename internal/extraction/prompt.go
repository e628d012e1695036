package extraction

import (
	"fmt"
	"strings"

	"sizefit-engine/internal/fitting/relevance"
	"sizefit-engine/internal/models"
)

var bottomGarments = map[string]bool{
	"pants": true, "skirt": true, "shorts": true, "jeans": true, "trousers": true,
}

var topGarments = map[string]bool{
	"shirt": true, "t-shirt": true, "tshirt": true, "dress": true, "jacket": true,
	"blouse": true, "sweater": true, "top": true, "formal shirt": true, "formal-shirt": true,
}

// BuildPrompt assembles the instruction text sent alongside the size chart
// image. The mapping rules must stay aligned with the normalizer's synonym
// table: anything the model is told to emit, the normalizer must accept.
func BuildPrompt(req *Request) string {
	relevant := relevance.ProjectProfile(req.Profile, req.ClothingType)
	primary := relevance.PrimaryMeasurements(req.ClothingType)

	primarySet := make(map[models.MeasurementName]bool, len(primary))
	for _, name := range primary {
		primarySet[name] = true
	}

	var measurementList strings.Builder
	for _, name := range measurementOrder(req.ClothingType) {
		value, ok := relevant[name]
		if !ok {
			continue
		}
		marker := ""
		if primarySet[name] {
			marker = " (Primary)"
		}
		fmt.Fprintf(&measurementList, "- %s: %s %s%s\n", name.Label(), trimFloat(value), name.Unit(), marker)
	}

	var b strings.Builder
	b.WriteString("You are a professional clothing size recommendation expert with advanced OCR capabilities for both English and Arabic text. Analyze this size chart image carefully and extract ALL measurements precisely.\n\n")

	b.WriteString("Customer Profile:\n")
	b.WriteString(measurementList.String())
	if req.Profile.Gender != "" {
		fmt.Fprintf(&b, "- Gender: %s\n", req.Profile.Gender)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Clothing Type: %s\nFabric Type: %s\n", req.ClothingType, req.FabricType)
	b.WriteString(garmentInstructions(req.ClothingType))

	b.WriteString(`
CRITICAL OCR INSTRUCTIONS - STRICT MAPPING ENFORCEMENT:

RULE 1 - STRICT COLUMN MAPPING (ABSOLUTELY NO GUESSING):
- ONLY extract measurements that are EXPLICITLY present as column headers in the image
- If a column header is NOT in the image, that measurement key MUST be omitted from the JSON output entirely
- NEVER assign the value of one column to another column's key

RULE 2 - COLUMN HEADER IDENTIFICATION:
Map ONLY these Arabic/English headers to standardized keys:
- "chest" ONLY for: صدر, chest, محيط الصدر, bust, قياس الصدر
- "waist" ONLY for: خصر, محيط الخصر, قياس الخصر, حزام بطول, حزام, طول الحزام
- "hip" ONLY for: ورك, hip, محيط الورك, hips, حجم الورك, قياس الورك
- "shoulder" ONLY for: كتف, shoulder, عرض الكتف, قياس الكتف
- "armLength" ONLY for: طول الذراع, arm length, طول الكم, طول الأكمام, sleeve length
- "garmentLength" ONLY for: الطول, length, total length, body length (THIS IS GARMENT LENGTH, NOT WAIST!)
- "inseam" ONLY for: طول الساق الداخلي, طول الرجل الداخلي, inseam, inside leg
- "thighCircumference" ONLY for: محيط الفخذ, thigh, فخذ, قياس الفخذ
- "legLength" ONLY for: طول البنطلون, طول الساق, leg length

RULE 3 - HANDLE VALUE RANGES:
- If the table shows a range (e.g., "83.8 - 86.4"), extract the MAXIMUM value (86.4)
- The garment must fit the largest part of the body, so always use the higher number

RULE 4 - DO NOT CONFUSE SIMILAR TERMS:
- "الطول" (Length) = garmentLength - THIS IS NOT WAIST!
- Only map to "waist" if the header explicitly contains خصر (waist) or حزام (belt)

RULE 5 - DATA INTEGRITY:
- All values must be in CENTIMETERS (cm) as numbers only
- If a measurement is unclear or unreadable, OMIT it entirely rather than guess
- If the image is blurry or contains no size chart, return an error

Return ONLY valid JSON:
{
  "extractedSizes": {
    "S": { "chest": 85, "waist": 70, "hip": 90 },
    "M": { "chest": 90, "waist": 75, "hip": 95 }
  },
  "analysis": "Short description of what was extracted...",
  "imageQuality": "good"
}

If the image cannot be read or contains no valid size chart, return:
{
  "extractedSizes": {},
  "analysis": "ERROR: [specific reason why the image could not be processed]",
  "imageQuality": "poor"
}
`)

	return b.String()
}

func garmentInstructions(clothingType string) string {
	lower := strings.ToLower(strings.TrimSpace(clothingType))
	switch {
	case bottomGarments[lower]:
		return fmt.Sprintf("\nGARMENT TYPE: BOTTOM (%s)\nPRIORITY MEASUREMENTS FOR BOTTOMS: waist, hip, inseam, thighCircumference\nNote: \"حزام بطول\" (belt length) is a common Arabic header for the waist column.\n", clothingType)
	case topGarments[lower]:
		return fmt.Sprintf("\nGARMENT TYPE: TOP (%s)\nPRIORITY MEASUREMENTS FOR TOPS: chest, shoulder, armLength, waist (for fitted tops)\n", clothingType)
	default:
		return fmt.Sprintf("\nGARMENT TYPE: %s\nExtract all available measurements.\n", clothingType)
	}
}

// measurementOrder yields a stable ordering for the prompt's measurement
// list: height, weight, then the garment's relevant measurements.
func measurementOrder(clothingType string) []models.MeasurementName {
	order := []models.MeasurementName{models.Height, models.Weight}
	return append(order, relevance.RelevantMeasurements(clothingType)...)
}

func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}
