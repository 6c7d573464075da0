package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Record is the generic field-name-to-value form of a task, as stored in JSON.
type Record map[string]any

// Record keys.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCreatedAt   = "created_at"
	FieldDue         = "due"
	FieldPriority    = "priority"
	FieldTags        = "tags"
	FieldStatus      = "status"
)

// ToRecord encodes the task with all eight fields. Tags are copied and never
// nil; an unset due date is encoded as nil.
func (t Task) ToRecord() Record {
	tags := make([]any, 0, len(t.Tags))
	for _, tag := range t.Tags {
		tags = append(tags, tag)
	}

	var due any
	if t.Due != "" {
		due = t.Due
	}

	return Record{
		FieldID:          t.ID,
		FieldTitle:       t.Title,
		FieldDescription: t.Description,
		FieldCreatedAt:   t.createdAt,
		FieldDue:         due,
		FieldPriority:    string(t.Priority),
		FieldTags:        tags,
		FieldStatus:      string(t.Status),
	}
}

// StoredTask is a task in its on-disk key order.
type StoredTask struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	CreatedAt   string   `json:"created_at"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
	Due         *string  `json:"due"`
	Tags        []string `json:"tags"`
}

// Stored returns the task in its on-disk form. Tags are copied and never nil.
func (t Task) Stored() StoredTask {
	st := StoredTask{
		ID:          t.ID,
		Title:       t.Title,
		CreatedAt:   t.createdAt,
		Status:      t.Status,
		Priority:    t.Priority,
		Description: t.Description,
		Tags:        append(make([]string, 0, len(t.Tags)), t.Tags...),
	}
	if t.Due != "" {
		due := t.Due
		st.Due = &due
	}
	return st
}

var errTrailingData = errors.New("unexpected data after top-level value")

// DecodeDocument decodes data as exactly one JSON value into v, keeping
// numbers as json.Number. Anything but whitespace after the value is an error.
func DecodeDocument(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}

// FromRecord decodes a record produced by ToRecord or read from storage.
// Missing or null tags decode to an empty list. Missing description, due,
// priority, and status take their defaults. Any other problem returns a
// *MalformedRecordError.
func FromRecord(r Record) (Task, error) {
	if r == nil {
		return Task{}, &MalformedRecordError{Err: fmt.Errorf("record is null")}
	}

	id, err := requiredInt(r, FieldID)
	if err != nil {
		return Task{}, err
	}
	title, err := requiredString(r, FieldTitle)
	if err != nil {
		return Task{}, err
	}
	createdAt, err := requiredString(r, FieldCreatedAt)
	if err != nil {
		return Task{}, err
	}

	t := New(id, title, createdAt)

	if t.Description, err = optionalString(r, FieldDescription); err != nil {
		return Task{}, err
	}
	if t.Due, err = optionalString(r, FieldDue); err != nil {
		return Task{}, err
	}

	if raw, err := optionalString(r, FieldPriority); err != nil {
		return Task{}, err
	} else if raw != "" {
		p, err := ParsePriority(raw)
		if err != nil {
			return Task{}, &MalformedRecordError{Field: FieldPriority, Err: err}
		}
		t.Priority = p
	}

	if raw, err := optionalString(r, FieldStatus); err != nil {
		return Task{}, err
	} else if raw != "" {
		s, err := ParseStatus(raw)
		if err != nil {
			return Task{}, &MalformedRecordError{Field: FieldStatus, Err: err}
		}
		t.Status = s
	}

	if t.Tags, err = decodeTags(r[FieldTags]); err != nil {
		return Task{}, err
	}

	return t, nil
}

func requiredInt(r Record, key string) (int, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, &MalformedRecordError{Field: key, Err: fmt.Errorf("missing required field")}
	}
	n, ok := asInt(v)
	if !ok {
		return 0, &MalformedRecordError{Field: key, Err: fmt.Errorf("expected integer, got %T", v)}
	}
	if n < 1 {
		return 0, &MalformedRecordError{Field: key, Err: fmt.Errorf("must be positive, got %d", n)}
	}
	return n, nil
}

func requiredString(r Record, key string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", &MalformedRecordError{Field: key, Err: fmt.Errorf("missing required field")}
	}
	s, ok := v.(string)
	if !ok {
		return "", &MalformedRecordError{Field: key, Err: fmt.Errorf("expected string, got %T", v)}
	}
	return s, nil
}

func optionalString(r Record, key string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &MalformedRecordError{Field: key, Err: fmt.Errorf("expected string, got %T", v)}
	}
	return s, nil
}

func decodeTags(v any) ([]string, error) {
	tags := make([]string, 0)
	switch list := v.(type) {
	case nil:
		return tags, nil
	case []string:
		return append(tags, list...), nil
	case []any:
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, &MalformedRecordError{
					Field: fmt.Sprintf("%s[%d]", FieldTags, i),
					Err:   fmt.Errorf("expected string, got %T", item),
				}
			}
			tags = append(tags, s)
		}
		return tags, nil
	default:
		return nil, &MalformedRecordError{Field: FieldTags, Err: fmt.Errorf("expected array, got %T", v)}
	}
}

// asInt accepts the integer representations produced by Go literals and by
// encoding/json with or without UseNumber.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := strconv.Atoi(n.String())
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
