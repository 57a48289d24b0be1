package dialog_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/juju/errors"

	"github.com/monocle-dev/opsdesk/internal/client"
	"github.com/monocle-dev/opsdesk/internal/dialog"
)

type recorder struct {
	calls     int
	body      map[string]any
	response  client.Response
	err       error
	refreshed int
	sawState  dialog.State
}

func (r *recorder) form(t *testing.T, fields []dialog.Field) *dialog.Form {
	t.Helper()
	var f *dialog.Form
	f = dialog.New(fields,
		func(ctx context.Context, body map[string]any) (client.Response, error) {
			r.calls++
			r.body = body
			r.sawState = f.State()
			return r.response, r.err
		},
		func(ctx context.Context) error {
			r.refreshed++
			return nil
		},
	)
	return f
}

var resourceFields = []dialog.Field{
	{Name: "resource_name", Required: true},
	{Name: "quantity", Kind: dialog.Integer, Required: true},
	{Name: "cost", Kind: dialog.Number},
	{Name: "created_by"},
}

func fill(t *testing.T, f *dialog.Form, values map[string]string) {
	t.Helper()
	for k, v := range values {
		if err := f.Set(k, v); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSubmit(t *testing.T) {
	type When struct {
		Values   map[string]string
		Response client.Response
		Err      error
	}
	type Then struct {
		Calls     int
		Refreshed int
		Cleared   bool
		ErrKind   func(error) bool
	}

	theory := func(when When, then Then) func(t *testing.T) {
		return func(t *testing.T) {
			rec := &recorder{response: when.Response, err: when.Err}
			f := rec.form(t, resourceFields)
			fill(t, f, when.Values)

			_, err := f.Submit(context.Background())

			if then.ErrKind == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if then.ErrKind != nil && !then.ErrKind(err) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			if rec.calls != then.Calls {
				t.Errorf("calls: want %d, got %d", then.Calls, rec.calls)
			}
			if rec.refreshed != then.Refreshed {
				t.Errorf("refreshes: want %d, got %d", then.Refreshed, rec.refreshed)
			}
			if cleared := f.Value("resource_name") == ""; cleared != then.Cleared {
				t.Errorf("cleared: want %v, got %v", then.Cleared, cleared)
			}
			if f.State() != dialog.Editing {
				t.Errorf("state after submit: %s", f.State())
			}
			if rec.calls > 0 && rec.sawState != dialog.Submitting {
				t.Errorf("state during submit: %s", rec.sawState)
			}
		}
	}

	valid := map[string]string{"resource_name": "cpu", "quantity": "2", "cost": "9.5"}

	t.Run("200 clears and refreshes", theory(
		When{Values: valid, Response: client.Response{Success: true, StatusCode: http.StatusOK}},
		Then{Calls: 1, Refreshed: 1, Cleared: true},
	))

	t.Run("201 clears and refreshes", theory(
		When{Values: valid, Response: client.Response{Success: true, StatusCode: http.StatusCreated}},
		Then{Calls: 1, Refreshed: 1, Cleared: true},
	))

	t.Run("conflict keeps values", theory(
		When{Values: valid, Response: client.Response{Message: `resource "cpu" already exists`, StatusCode: http.StatusConflict}},
		Then{Calls: 1, ErrKind: func(err error) bool {
			var rejected *dialog.RejectedError
			return errors.As(err, &rejected) && err.Error() == `resource "cpu" already exists`
		}},
	))

	t.Run("transport failure keeps values", theory(
		When{Values: valid, Err: errors.New("connection refused")},
		Then{Calls: 1, ErrKind: func(err error) bool { return err != nil }},
	))

	t.Run("missing required field sends nothing", theory(
		When{Values: map[string]string{"resource_name": "cpu", "quantity": "  "}},
		Then{Calls: 0, ErrKind: func(err error) bool { return errors.Is(err, errors.NotValid) }},
	))

	t.Run("unparsable number sends nothing", theory(
		When{Values: map[string]string{"resource_name": "cpu", "quantity": "two"}},
		Then{Calls: 0, ErrKind: func(err error) bool { return errors.Is(err, errors.NotValid) }},
	))
}

func TestBody(t *testing.T) {
	rec := &recorder{response: client.Response{StatusCode: http.StatusOK}}
	f := rec.form(t, resourceFields)
	fill(t, f, map[string]string{"resource_name": " cpu ", "quantity": "2", "cost": "9.5"})

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}

	if rec.body["resource_name"] != " cpu " || rec.body["quantity"] != 2 || rec.body["cost"] != 9.5 {
		t.Errorf("body: %#v", rec.body)
	}
	if _, ok := rec.body["created_by"]; ok {
		t.Errorf("blank optional field sent: %#v", rec.body)
	}
}

func TestSetUnknownField(t *testing.T) {
	f := dialog.New(resourceFields, nil, nil)
	if err := f.Set("colour", "red"); !errors.Is(err, errors.NotFound) {
		t.Errorf("want NotFound, got %v", err)
	}
}

func TestFields(t *testing.T) {
	update, err := dialog.Fields("category", true)
	if err != nil {
		t.Fatal(err)
	}
	if update[0].Name != "category_id" || !update[0].Required {
		t.Errorf("first update field: %+v", update[0])
	}
	for _, fd := range update[1:] {
		if fd.Required {
			t.Errorf("update field %s is required", fd.Name)
		}
	}

	if _, err := dialog.Fields("invoice", false); !errors.Is(err, errors.NotFound) {
		t.Errorf("want NotFound, got %v", err)
	}
}
