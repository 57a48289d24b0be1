// Package dialog holds the create and update forms of the admin tool. A
// form collects named values, checks that required ones are present, and
// submits them through a single client call.
package dialog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/juju/errors"

	"github.com/monocle-dev/opsdesk/internal/client"
)

type State int

const (
	Editing State = iota
	Submitting
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	}
	return "unknown"
}

type Kind int

const (
	Text Kind = iota
	Number
	Integer
)

type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

// SubmitFunc performs the one client call a form is bound to.
type SubmitFunc func(ctx context.Context, body map[string]any) (client.Response, error)

// RefreshFunc reloads whatever lists the submitted entity.
type RefreshFunc func(ctx context.Context) error

// Form is not safe for concurrent use.
type Form struct {
	fields  []Field
	values  map[string]string
	state   State
	submit  SubmitFunc
	refresh RefreshFunc
}

func New(fields []Field, submit SubmitFunc, refresh RefreshFunc) *Form {
	return &Form{
		fields:  fields,
		values:  map[string]string{},
		submit:  submit,
		refresh: refresh,
	}
}

func (f *Form) State() State { return f.state }

func (f *Form) field(name string) (Field, bool) {
	for _, fd := range f.fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return Field{}, false
}

func (f *Form) Set(name, value string) error {
	if _, ok := f.field(name); !ok {
		return errors.NotFoundf("field %q", name)
	}
	f.values[name] = value
	return nil
}

func (f *Form) Value(name string) string { return f.values[name] }

// Missing lists required fields that are blank.
func (f *Form) Missing() []string {
	var missing []string
	for _, fd := range f.fields {
		if fd.Required && strings.TrimSpace(f.values[fd.Name]) == "" {
			missing = append(missing, fd.Name)
		}
	}
	return missing
}

// Body converts the filled-in values into a request body. Blank values are
// left out.
func (f *Form) Body() (map[string]any, error) {
	body := map[string]any{}
	for _, fd := range f.fields {
		raw := strings.TrimSpace(f.values[fd.Name])
		if raw == "" {
			continue
		}

		switch fd.Kind {
		case Number:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, errors.NotValidf("%s %q", fd.Name, raw)
			}
			body[fd.Name] = v
		case Integer:
			v, err := strconv.Atoi(raw)
			if err != nil {
				return nil, errors.NotValidf("%s %q", fd.Name, raw)
			}
			body[fd.Name] = v
		default:
			body[fd.Name] = f.values[fd.Name]
		}
	}
	return body, nil
}

func (f *Form) Clear() {
	f.values = map[string]string{}
}

// Submit sends the form when every required field is present. A 200 or 201
// answer clears the form and runs the refresh; any other answer keeps the
// values and is returned as an error carrying the server's message.
func (f *Form) Submit(ctx context.Context) (client.Response, error) {
	if f.state == Submitting {
		return client.Response{}, errors.Errorf("form is already being submitted")
	}
	if missing := f.Missing(); len(missing) > 0 {
		return client.Response{}, errors.NotValidf("missing %s", strings.Join(missing, ", "))
	}
	body, err := f.Body()
	if err != nil {
		return client.Response{}, err
	}

	f.state = Submitting
	defer func() { f.state = Editing }()

	resp, err := f.submit(ctx, body)
	if err != nil {
		return resp, err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	default:
		return resp, &RejectedError{Response: resp}
	}

	f.Clear()
	if f.refresh != nil {
		if err := f.refresh(ctx); err != nil {
			return resp, errors.Annotate(err, "refreshing")
		}
	}
	return resp, nil
}

// RejectedError is a well-formed answer with a status the form does not
// treat as success.
type RejectedError struct {
	Response client.Response
}

func (e *RejectedError) Error() string {
	if e.Response.Message == "" {
		return http.StatusText(e.Response.StatusCode)
	}
	return e.Response.Message
}
