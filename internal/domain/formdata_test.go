package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormData_RoundTrip(t *testing.T) {
	t.Parallel()

	raw := `{"Name":"Max Mustermann","email":"max@example.com","age":7,"siblings":["Anna","Ben"],` +
		`"consent":true,"address":{"street":"Hauptstr. 1","zip":"12345"},"notes":null}`

	var original FormData
	require.NoError(t, json.Unmarshal([]byte(raw), &original))

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded FormData
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.Equal(t, original.ToMap(), decoded.ToMap())
	assert.Equal(t, original.Keys(), decoded.Keys())
	assert.JSONEq(t, raw, string(encoded))
}

func TestFormData_PreservesOrder(t *testing.T) {
	t.Parallel()

	var d FormData
	require.NoError(t, json.Unmarshal([]byte(`{"z":1,"a":2,"m":3}`), &d))

	assert.Equal(t, []string{"z", "a", "m"}, d.Keys())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2,"m":3}`, string(out))
}

func TestFormData_SetKeepsPosition(t *testing.T) {
	t.Parallel()

	d := NewFormData("a", "1", "b", "2")
	d.Set("a", "updated")

	assert.Equal(t, []string{"a", "b"}, d.Keys())
	v, ok := d.Get("a")
	require.True(t, ok)
	assert.Equal(t, "updated", v)
}

func TestFormData_NullAndEmpty(t *testing.T) {
	t.Parallel()

	var d FormData
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.Equal(t, 0, d.Len())

	parsed, err := ParseFormData(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, parsed.Len())

	out, err := json.Marshal(FormData{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestFormData_RejectsNonObject(t *testing.T) {
	t.Parallel()

	_, err := ParseFormData([]byte(`[1,2,3]`))
	assert.Error(t, err)

	_, err = ParseFormData([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestFormData_FirstNonEmpty(t *testing.T) {
	t.Parallel()

	d := NewFormData(
		"email", "   ",
		"Email", "second@example.com",
		"E-mail", "third@example.com",
	)

	assert.Equal(t, "second@example.com", d.FirstNonEmpty(EmailFieldKeys))
	assert.Equal(t, "", d.FirstNonEmpty(NameFieldKeys))
}

func TestFormData_FirstNonEmpty_PriorityOrder(t *testing.T) {
	t.Parallel()

	d := NewFormData("E-mail", "late@example.com", "email1", "early@example.com")

	assert.Equal(t, "early@example.com", d.FirstNonEmpty(EmailFieldKeys))
}
