package analyzer

// analysisPrompt is the fixed instruction sent with every frame. Its JSON
// schema is what internal/extract expects back; change them together.
const analysisPrompt = `You are a screen analysis assistant. Analyze this screenshot carefully.

Your tasks:
1. Describe briefly what is currently on screen (max 2 sentences).
2. Identify ALL clickable/interactive UI elements you can see (buttons, links, input fields, menu items, checkboxes, dropdowns, etc.).
3. For each element, estimate its CENTER pixel coordinates (x, y) on the screen.
4. Determine which element is the MOST RELEVANT or CORRECT option to interact with next (e.g., a primary action button, a "Next" button, an "OK/Submit" button, or the most logical next step).

Return your answer STRICTLY as JSON in the following format. Do NOT include any other text outside the JSON block:
{
  "screen_description": "Brief description of what's on screen",
  "elements": [
    {"label": "Element text/name", "x": 500, "y": 300, "type": "button"},
    {"label": "Another element", "x": 200, "y": 450, "type": "link"}
  ],
  "recommended": {
    "label": "The best element to click",
    "x": 500,
    "y": 300,
    "action": "click",
    "reason": "Why this is the correct choice"
  }
}
`
