package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"job-finder/internal/apply"
	"job-finder/internal/model"
)

type applyFormField struct {
	Key         string
	Label       string
	Placeholder string
	Value       string
	CharLimit   int
}

type applyForm struct {
	Job         model.Job
	Fields      []applyFormField
	Index       int
	Input       textinput.Model
	FieldErrors apply.ValidationErrors
}

func newApplyForm(job model.Job, width int) *applyForm {
	f := &applyForm{
		Job: job,
		Fields: []applyFormField{
			{Key: apply.FieldName, Label: "Full Name", Placeholder: "Enter your full name", CharLimit: 120},
			{Key: apply.FieldEmail, Label: "Email", Placeholder: "Enter your email", CharLimit: 254},
			{Key: apply.FieldContact, Label: "Contact Number", Placeholder: "Enter your contact number", CharLimit: apply.ContactDigits + 4},
			{Key: apply.FieldHiringReason, Label: "Why should we hire you?", Placeholder: "Tell us why you are a great fit", CharLimit: 1000},
		},
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Width = clampInt(width-8, 20, 120)
	f.Input = input
	f.loadFieldIntoInput()
	f.Input.Focus()
	return f
}

func resizeApplyForm(f *applyForm, width int) *applyForm {
	if f == nil {
		return nil
	}
	f.Input.Width = clampInt(width-8, 20, 120)
	return f
}

func (f *applyForm) currentField() applyFormField {
	if len(f.Fields) == 0 {
		return applyFormField{}
	}
	f.Index = clampInt(f.Index, 0, len(f.Fields)-1)
	return f.Fields[f.Index]
}

func (f *applyForm) commitInput() {
	if f == nil || len(f.Fields) == 0 {
		return
	}
	f.Fields[f.Index].Value = f.Input.Value()
}

func (f *applyForm) loadFieldIntoInput() {
	if f == nil || len(f.Fields) == 0 {
		return
	}
	curr := f.currentField()
	f.Input.Placeholder = curr.Placeholder
	f.Input.CharLimit = curr.CharLimit
	f.Input.SetValue(curr.Value)
	f.Input.CursorEnd()
}

func (f *applyForm) move(delta int) {
	f.commitInput()
	f.Index = clampInt(f.Index+delta, 0, len(f.Fields)-1)
	f.loadFieldIntoInput()
}

func (f *applyForm) onLastField() bool {
	return f.Index >= len(f.Fields)-1
}

func (f *applyForm) application() apply.Application {
	vals := make(map[string]string, len(f.Fields))
	for _, field := range f.Fields {
		vals[field.Key] = field.Value
	}
	return apply.Application{
		Name:         vals[apply.FieldName],
		Email:        vals[apply.FieldEmail],
		Contact:      vals[apply.FieldContact],
		HiringReason: vals[apply.FieldHiringReason],
	}
}

// submit validates every field. On failure the cursor jumps to the first
// field with an error.
func (f *applyForm) submit() (string, error) {
	f.commitInput()
	ack, err := apply.Submit(f.Job, f.application())
	if err == nil {
		f.FieldErrors = nil
		return ack, nil
	}
	var verrs apply.ValidationErrors
	if !errors.As(err, &verrs) {
		return "", err
	}
	f.FieldErrors = verrs
	for i, field := range f.Fields {
		if _, bad := verrs[field.Key]; bad {
			f.Index = i
			f.loadFieldIntoInput()
			break
		}
	}
	return "", err
}

func (f *applyForm) fieldError(key string) string {
	if f.FieldErrors == nil {
		return ""
	}
	return strings.TrimSpace(f.FieldErrors[key])
}
