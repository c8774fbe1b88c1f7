// internal/recommend/prompt.go
package recommend

import (
	"fmt"
	"strings"

	"lease-advisor/internal/models"
)

// BuildPrompt renders the consultant prompt for one attempt. Attempts after
// the first append the more-thorough-search instruction so the generator
// widens its net instead of repeating the same thin answer.
func BuildPrompt(quiz models.QuizData, radiusMiles, attempt int) string {
	carMake := quiz.EffectiveMake()
	bodyTypes := quiz.BodyType.Join("any body type")
	powertrainTypes := quiz.Powertrain.Join("Not specified")

	var parts []string

	parts = append(parts, "You are a professional car leasing consultant with live web search access on official/franchised dealerships only.")
	parts = append(parts, fmt.Sprintf("\nYour task is to find up to 10 active lease offers for a %s that is a %s ONLY in the %s area (within %d miles).",
		carMake, bodyTypes, quiz.Zipcode, radiusMiles))

	parts = append(parts, "\nUser Preferences:")
	parts = append(parts, fmt.Sprintf("- Make: %s", carMake))
	parts = append(parts, fmt.Sprintf("- Category: %s. ONLY include cars in this category.", bodyTypes))
	parts = append(parts, fmt.Sprintf("- Powertrain: %s. ONLY include the powertrain cars that the user prefers.", powertrainTypes))
	parts = append(parts, fmt.Sprintf("- Zip Code: %s (Search radius: %d miles)", quiz.Zipcode, radiusMiles))

	parts = append(parts, "\nListing Requirements:")
	parts = append(parts, "- Only return listings from authorized franchised dealerships or official manufacturer websites")
	parts = append(parts, "- Examples: BMW of Bayside, Toyota of Manhattan, Ford.com, Lexus.com")
	parts = append(parts, "- Prohibited: Lease brokers, aggregators, classifieds (VIP Auto, Cars.com, Craigslist, etc.)")

	parts = append(parts, "\nCRITICAL FILTERING REQUIREMENTS:")
	parts = append(parts, `- UNIQUE MODELS ONLY: Do not include multiple listings of the same model. For example, if you find "BMW X3 xDrive30i", include it only ONCE, even if multiple dealerships offer it. Choose the best available offer for each unique model.`)
	parts = append(parts, `- MSRP REQUIRED: Only include cars where the MSRP is available and specified. Do NOT include any listings where MSRP is "Not specified", "TBD", "Call for pricing", or similar. Every car must have a valid numerical MSRP value.`)

	parts = append(parts, "\nResponse format (JSON only):")
	parts = append(parts, `{
  "recommendations": [
    {
      "rank": 1,
      "make": "BMW",
      "model": "X3 xDrive30i",
      "year": 2025,
      "trim": "xDrive30i",
      "category": "SUV",
      "msrp": "55890",
      "residual": "58%",
      "money_factor": "0.00190",
      "monthly_payment": 599,
      "down_payment": 5589,
      "lease_months": 39,
      "lease_miles_per_year": 10000,
      "source": "BMW of Bayside"
    }
  ]
}`)

	if attempt > 1 {
		parts = append(parts, fmt.Sprintf("\nIMPORTANT: This is attempt #%d. Please conduct a more thorough search and return at least 3-5 different car recommendations if available.", attempt))
	}

	return strings.Join(parts, "\n")
}

// TemperatureFor returns the sampling temperature for an attempt: zero on the
// first call, non-zero on retries so repeated calls can diverge.
func TemperatureFor(attempt int) float64 {
	if attempt > 1 {
		return 0.3
	}
	return 0
}
