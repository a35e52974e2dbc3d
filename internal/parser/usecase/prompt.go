package usecase

import (
	"fmt"
	"time"
)

// extractionSystemPrompt is the system instruction for single-task extraction.
const extractionSystemPrompt = `You are a task extraction assistant. Read one message from the user and describe the single task it contains.

RULES:
1. Return ONLY one JSON object. No markdown, no code blocks, no explanation text.
2. The object has exactly these fields:
   - title: short task description without any date, time, reminder or repeat wording (required)
   - description: extra details, or an empty string
   - due: ISO8601 date-time with offset when the task is due, or null
   - remind: ISO8601 date-time with offset when the user wants to be reminded, or null
   - repeat: one of "daily", "weekly", "monthly", "yearly", "every N days", "every N weeks", or null
3. Resolve relative expressions ("tomorrow", "next friday", "in 2 hours") against CURRENT TIME in TIMEZONE.
4. "remind me 1 hour before" means remind = due minus 1 hour.
5. "remind me in 30 minutes" without another date means remind = due = current time plus 30 minutes.
6. If the message mentions no date, due and remind are null.

EXAMPLE INPUT (CURRENT TIME 2026-02-02T12:00:00+03:00):
"meet client tomorrow at 15:00 remind 1 hour before"

EXAMPLE OUTPUT:
{"title": "Meet client", "description": "", "due": "2026-02-03T15:00:00+03:00", "remind": "2026-02-03T14:00:00+03:00", "repeat": null}

EXAMPLE INPUT (CURRENT TIME 2026-02-02T12:00:00+03:00):
"report every week on friday at 18:00"

EXAMPLE OUTPUT:
{"title": "Report", "description": "", "due": "2026-02-06T18:00:00+03:00", "remind": null, "repeat": "weekly"}`

// buildExtractionPrompt builds the user message for one extraction request.
func buildExtractionPrompt(text string, now time.Time) string {
	return fmt.Sprintf("CURRENT TIME: %s\nTIMEZONE: %s\n\nMESSAGE:\n%s",
		now.Format(time.RFC3339), now.Location().String(), text)
}
