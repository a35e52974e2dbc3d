package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"task-reminder/internal/parser"
	"task-reminder/internal/recurrence"
	"task-reminder/pkg/llmprovider"
	pkgLog "task-reminder/pkg/log"
)

const llmTemperature = 0.1

var errNoJSONObject = errors.New("no JSON object in response")

// naiveLayouts are accepted for timestamps without an offset; they are read in the configured timezone.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// llmStrategy asks a language model for the task fields.
type llmStrategy struct {
	l       pkgLog.Logger
	llm     parser.LLM
	loc     *time.Location
	timeout time.Duration
}

func (llmStrategy) Name() string {
	return parser.SourceLLM
}

func (s llmStrategy) Attempt(ctx context.Context, text string, now time.Time) (parser.ParsedTask, bool) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: extractionSystemPrompt}},
		},
		Messages: []llmprovider.Message{{
			Role:  "user",
			Parts: []llmprovider.Part{{Text: buildExtractionPrompt(text, now.In(s.loc))}},
		}},
		Temperature: llmTemperature,
	})
	if err != nil {
		s.l.Warnf(ctx, "parser.usecase.llmStrategy.Attempt: GenerateContent: %v", err)
		return parser.ParsedTask{}, false
	}
	if resp == nil {
		return parser.ParsedTask{}, false
	}

	fields, err := decodeObject(responseText(resp))
	if err != nil {
		s.l.Warnf(ctx, "parser.usecase.llmStrategy.Attempt: decode response: %v", err)
		return parser.ParsedTask{}, false
	}

	task, ok := s.toParsedTask(fields)
	if !ok {
		s.l.Warnf(ctx, "parser.usecase.llmStrategy.Attempt: response has no title")
		return parser.ParsedTask{}, false
	}
	return task, true
}

// toParsedTask validates each field on its own; a malformed field is treated as absent.
func (s llmStrategy) toParsedTask(fields map[string]json.RawMessage) (parser.ParsedTask, bool) {
	task := parser.ParsedTask{Source: parser.SourceLLM}

	title, _ := stringField(fields, "title")
	task.Title = normalizeSpace(title)
	if task.Title == "" {
		return parser.ParsedTask{}, false
	}

	if desc, ok := stringField(fields, "description"); ok {
		task.Description = strings.TrimSpace(desc)
	}
	if due, ok := stringField(fields, "due"); ok {
		task.DueAt = s.parseTimestamp(due)
	}
	if remind, ok := stringField(fields, "remind"); ok {
		task.RemindAt = s.parseTimestamp(remind)
	}
	if repeat, ok := stringField(fields, "repeat"); ok {
		task.RepeatRule = recurrence.Normalize(repeat)
	}
	return task, true
}

// parseTimestamp accepts RFC3339, naive ISO date-times and bare dates (end of that day).
func (s llmStrategy) parseTimestamp(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.In(s.loc)
		return &t
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, v, s.loc); err == nil {
			return &t
		}
	}
	if d, err := time.ParseInLocation("2006-01-02", v, s.loc); err == nil {
		t := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, s.loc)
		return &t
	}
	return nil
}

func responseText(resp *llmprovider.Response) string {
	var sb strings.Builder
	for _, p := range resp.Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// decodeObject reads a JSON object, falling back to the outermost {...} when
// the model wrapped it in prose or code fences.
func decodeObject(raw string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err == nil && fields != nil {
		return fields, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, errNoJSONObject
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
		return nil, fmt.Errorf("unmarshal object: %w", err)
	}
	if fields == nil {
		return nil, errNoJSONObject
	}
	return fields, nil
}

// stringField returns a string value; null, numbers and other shapes are absent.
func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
