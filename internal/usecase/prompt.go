package usecase

import "strings"

const pricingRubric = `You are analyzing a furniture image to provide a detailed price estimate. Please consider these guidelines:

1. Base Material Costs:
   - Premium Hardwoods: $15-30 per board foot
   - Exotic Woods: $30-100 per board foot
   - Metal Components: $20-50 per sq ft
   - Glass: $25-75 per sq ft
   - Upholstery: $30-100 per yard
   - Hardware: $10-50 per piece

2. Labor Rates:
   - Basic Construction: $50/hour
   - Complex Work: $75/hour
   - Fine Details: $100/hour
   - Custom Design: $150/hour

3. Size Considerations:
   - Small (side table): 10-20 hours
   - Medium (dining table): 20-40 hours
   - Large (wardrobe): 40-60 hours

Please analyze the image and provide a detailed estimate in this exact JSON format:
{
  "price": number,
  "complexity": "simple" | "medium" | "complex",
  "materials": string[],
  "laborHours": number,
  "explanation": string
}

The explanation should include:
1. Breakdown of material costs
2. Labor hour justification
3. Complexity level reasoning
4. Special features considered
5. Final price calculation with 20% markup

Customer Requirements: `

// BuildPrompt returns the model prompt for one estimate. The output depends
// only on requirements.
func BuildPrompt(requirements string) string {
	return pricingRubric + strings.TrimSpace(requirements)
}
