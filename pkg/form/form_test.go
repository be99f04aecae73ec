package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/formkit/pkg/schema"
)

// SignupValues is the form struct the tests drive.
type SignupValues struct {
	Email    string  `form:"email" json:"email"`
	Password string  `form:"password" json:"password"`
	Age      float64 `form:"age" json:"age"`
	Terms    bool    `form:"terms" json:"terms"`
}

func signupSchema() schema.Parser {
	return schema.Object(
		schema.Field("email",
			schema.Required("Email required"),
			schema.Email("Invalid email"),
		),
		schema.Field("password",
			schema.Required("Password required"),
			schema.MinLength(8, "Password too short"),
		),
		schema.Field("age",
			schema.Min(13, "Too young"),
		),
		schema.Field("terms",
			schema.Accepted("Accept the terms"),
		),
	)
}

func newSignupForm(opts ...Option[SignupValues]) *Form[SignupValues] {
	opts = append([]Option[SignupValues]{WithSchema[SignupValues](signupSchema())}, opts...)
	return New(SignupValues{}, opts...)
}

func validValues() map[string]any {
	return map[string]any{
		"email":    "alice@example.com",
		"password": "long enough",
		"age":      30.0,
		"terms":    true,
	}
}

func TestNewInitialState(t *testing.T) {
	f := New(SignupValues{Email: "seed@example.com", Age: 20})

	state := f.Snapshot()
	if state.Values["email"] != "seed@example.com" {
		t.Errorf("Expected seeded email, got %v", state.Values["email"])
	}
	if state.Values["age"] != 20.0 {
		t.Errorf("Expected seeded age, got %v", state.Values["age"])
	}
	if !state.Valid {
		t.Error("Expected new form to start valid")
	}
	if state.Submitting || state.SubmitCount != 0 || state.SubmitError != "" {
		t.Errorf("Expected pristine submission state, got %+v", state)
	}
	if len(state.Errors) != 0 || len(state.Touched) != 0 {
		t.Errorf("Expected no errors or touched flags, got %+v", state)
	}
}

func TestFieldsDeclarationOrder(t *testing.T) {
	f := newSignupForm()

	want := []string{"email", "password", "age", "terms"}
	if diff := cmp.Diff(want, f.Fields()); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSetFieldValueRecordsFirstViolation(t *testing.T) {
	f := newSignupForm()

	f.SetFieldValue("email", "bob")

	state := f.Snapshot()
	if state.Errors["email"] != "Invalid email" {
		t.Errorf("Expected email violation, got %v", state.Errors)
	}
	if state.Valid {
		t.Error("Expected invalid after failing change")
	}
	// Other fields fail validation too, but a field-scoped change must
	// not shout about fields the user never touched.
	if _, ok := state.Errors["password"]; ok {
		t.Errorf("Expected no password error from email change, got %v", state.Errors)
	}
}

func TestSetFieldValueClearsOwnErrorOnPass(t *testing.T) {
	f := New(SignupValues{},
		WithSchema[SignupValues](schema.Object(
			schema.Field("email", schema.Email("Invalid email")),
		)),
	)

	f.SetFieldValue("email", "bob")
	if f.Snapshot().Errors["email"] != "Invalid email" {
		t.Fatalf("Expected email error, got %v", f.Snapshot().Errors)
	}

	f.SetFieldValue("email", "bob@x.com")

	state := f.Snapshot()
	if _, ok := state.Errors["email"]; ok {
		t.Errorf("Expected email error cleared, got %v", state.Errors)
	}
	if !state.Valid {
		t.Error("Expected valid once the only error is gone")
	}
}

func TestSetFieldValueKeepsStaleErrorsAndValidity(t *testing.T) {
	f := newSignupForm()

	// Leave a stale password error behind.
	f.SetFieldValue("password", "short")
	if f.Snapshot().Errors["password"] != "Password too short" {
		t.Fatalf("Expected password error, got %v", f.Snapshot().Errors)
	}

	// Email itself passes now, but password's recorded error remains and
	// keeps the form invalid. Other invalid fields (terms) stay silent.
	f.SetFieldValue("email", "alice@example.com")

	state := f.Snapshot()
	if state.Errors["password"] != "Password too short" {
		t.Errorf("Expected stale password error kept, got %v", state.Errors)
	}
	if state.Valid {
		t.Error("Expected form to stay invalid while another field's error remains")
	}
}

func TestSetFieldValueUnknownFieldIgnored(t *testing.T) {
	f := newSignupForm()
	before := f.Snapshot()

	f.SetFieldValue("nope", "value")

	after := f.Snapshot()
	if diff := cmp.Diff(before.Values, after.Values); diff != "" {
		t.Errorf("Unknown field changed values (-before +after):\n%s", diff)
	}
}

func TestSetFieldValueWithoutSchema(t *testing.T) {
	f := New(SignupValues{})

	f.SetFieldValue("email", "anything")

	state := f.Snapshot()
	if !state.Valid || len(state.Errors) != 0 {
		t.Errorf("Expected schemaless form to stay valid, got %+v", state)
	}
	if state.Values["email"] != "anything" {
		t.Errorf("Expected value written, got %v", state.Values["email"])
	}
}

func TestTouched(t *testing.T) {
	f := newSignupForm()

	f.HandleBlur("email")
	if !f.Snapshot().Touched["email"] {
		t.Error("Expected email touched after blur")
	}

	f.SetFieldTouched("email", false)
	if f.Snapshot().Touched["email"] {
		t.Error("Expected email untouched again")
	}

	f.SetFieldTouched("nope", true)
	if f.Snapshot().Touched["nope"] {
		t.Error("Expected unknown field blur ignored")
	}
}

func TestSetValuesMergesKnownFieldsOnly(t *testing.T) {
	f := newSignupForm()

	f.SetValues(map[string]any{
		"email": "alice@example.com",
		"age":   30.0,
		"extra": "dropped",
	})

	state := f.Snapshot()
	if state.Values["email"] != "alice@example.com" || state.Values["age"] != 30.0 {
		t.Errorf("Expected merged values, got %v", state.Values)
	}
	if _, ok := state.Values["extra"]; ok {
		t.Error("Expected unknown field dropped")
	}
	// SetValues does not validate.
	if len(state.Errors) != 0 {
		t.Errorf("Expected no errors from SetValues, got %v", state.Errors)
	}
}

func TestValidateFormReplacesErrorMap(t *testing.T) {
	f := newSignupForm()

	if f.ValidateForm() {
		t.Fatal("Expected empty form to fail validation")
	}

	state := f.Snapshot()
	for _, field := range []string{"email", "password", "terms"} {
		if state.Errors[field] == "" {
			t.Errorf("Expected %s error after full validation, got %v", field, state.Errors)
		}
	}

	f.SetValues(validValues())
	if !f.ValidateForm() {
		t.Fatalf("Expected valid form, got %v", f.Snapshot().Errors)
	}
	if len(f.Snapshot().Errors) != 0 {
		t.Errorf("Expected errors cleared, got %v", f.Snapshot().Errors)
	}
}

func TestValidateFormFirstViolationWins(t *testing.T) {
	f := newSignupForm()

	// Empty email violates required and email format; required is declared
	// first, so it is the reported message.
	f.ValidateForm()
	if msg := f.Snapshot().Errors["email"]; msg != "Email required" {
		t.Errorf("Expected first declared violation, got %q", msg)
	}
}

func TestResetForm(t *testing.T) {
	f := New(SignupValues{Email: "seed@example.com"},
		WithSchema[SignupValues](signupSchema()),
	)

	f.SetFieldValue("email", "bob")
	f.HandleBlur("email")
	f.ValidateForm()

	f.ResetForm()

	want := State{
		Values: map[string]any{
			"email":    "seed@example.com",
			"password": "",
			"age":      0.0,
			"terms":    false,
		},
		Errors:  map[string]string{},
		Touched: map[string]bool{},
		Valid:   true,
	}
	if diff := cmp.Diff(want, f.Snapshot()); diff != "" {
		t.Errorf("State after reset mismatch (-want +got):\n%s", diff)
	}

	// Resetting twice is the same as resetting once.
	f.ResetForm()
	if diff := cmp.Diff(want, f.Snapshot()); diff != "" {
		t.Errorf("State after second reset mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	f := newSignupForm()

	state := f.Snapshot()
	state.Values["email"] = "mutated"
	state.Errors["email"] = "mutated"
	state.Touched["email"] = true

	fresh := f.Snapshot()
	if fresh.Values["email"] == "mutated" {
		t.Error("Snapshot values alias internal state")
	}
	if len(fresh.Errors) != 0 || len(fresh.Touched) != 0 {
		t.Error("Snapshot maps alias internal state")
	}
}

func TestValuesMaterializesStruct(t *testing.T) {
	f := newSignupForm()
	f.SetValues(validValues())

	values := f.Values()
	want := SignupValues{
		Email:    "alice@example.com",
		Password: "long enough",
		Age:      30,
		Terms:    true,
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}

func TestValuesMidEditLeavesZero(t *testing.T) {
	f := newSignupForm()

	// A cleared numeric input holds "", which cannot become a float64.
	f.HandleChange("age", "", InputNumber)

	if f.Get("age") != "" {
		t.Errorf("Expected cleared input stored as empty string, got %v", f.Get("age"))
	}
	if age := f.Values().Age; age != 0 {
		t.Errorf("Expected zero value for mid-edit field, got %v", age)
	}
}

func TestSubscribeFiresOncePerOperation(t *testing.T) {
	f := newSignupForm()

	calls := 0
	unsubscribe := f.Subscribe(func() { calls++ })

	// One operation touching values, errors and validity must coalesce.
	f.SetFieldValue("email", "bob")
	if calls != 1 {
		t.Errorf("Expected 1 notification for SetFieldValue, got %d", calls)
	}

	unsubscribe()
	f.SetFieldValue("email", "alice@example.com")
	if calls != 1 {
		t.Errorf("Expected no notifications after unsubscribe, got %d", calls)
	}
}
