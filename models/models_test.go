package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionPaths_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{name: "scalar", body: `{"selected":"A/img1.jpg"}`, want: []string{"A/img1.jpg"}},
		{name: "array", body: `{"selected":["A/img1.jpg","B/img2.jpg"]}`, want: []string{"A/img1.jpg", "B/img2.jpg"}},
		{name: "empty array", body: `{"selected":[]}`, want: []string{}},
		{name: "null", body: `{"selected":null}`, want: []string{}},
		{name: "numbers", body: `{"selected":[1,2]}`, wantErr: true},
		{name: "object", body: `{"selected":{"a":1}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SubmitSelectionRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, []string(req.Selected))
		})
	}
}

func TestCoerceSelection(t *testing.T) {
	got, err := CoerceSelection("A/img1.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"A/img1.jpg"}, got)

	got, err = CoerceSelection([]interface{}{"A/img1.jpg", "B/img2.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A/img1.jpg", "B/img2.jpg"}, got)

	got, err = CoerceSelection(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	got, err = CoerceSelection(SelectionPaths{"x.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.jpg"}, got)

	_, err = CoerceSelection([]interface{}{"ok", 3})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CoerceSelection(42)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCoerceSelection_CopiesInput(t *testing.T) {
	in := []string{"a.jpg"}
	got, err := CoerceSelection(in)
	require.NoError(t, err)
	got[0] = "changed"
	assert.Equal(t, "a.jpg", in[0])
}

func TestEncodeDecodeSelection(t *testing.T) {
	raw, err := EncodeSelection(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	raw, err = EncodeSelection([]string{"B/img2.jpg", "A/img1.jpg"})
	require.NoError(t, err)
	got, err := DecodeSelection(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"B/img2.jpg", "A/img1.jpg"}, got)

	for _, blank := range []string{"", "  ", "null"} {
		got, err := DecodeSelection(blank)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}

	_, err = DecodeSelection("{broken")
	assert.Error(t, err)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusNew.Valid())
	assert.True(t, StatusUnderSelection.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, Status("Archived").Valid())
	assert.False(t, Status("").Valid())
}

func TestProjectHasToken(t *testing.T) {
	empty, live := "", "tok"
	assert.False(t, (&Project{}).HasToken())
	assert.False(t, (&Project{Token: &empty}).HasToken())
	assert.True(t, (&Project{Token: &live}).HasToken())
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: &ValidationError{Field: "name", Message: "required"}, want: KindValidation},
		{err: fmt.Errorf("wrapped: %w", &ValidationError{Message: "bad"}), want: KindValidation},
		{err: fmt.Errorf("project: %w", ErrForbidden), want: KindForbidden},
		{err: fmt.Errorf("project not found: %w", ErrNotFound), want: KindNotFound},
		{err: ErrNoSelection, want: KindNoSelection},
		{err: ErrConflict, want: KindConflict},
		{err: errors.New("disk on fire"), want: KindInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Kind(tt.err), "%v", tt.err)
	}
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "name: required", (&ValidationError{Field: "name", Message: "required"}).Error())
	assert.Equal(t, "bad input", (&ValidationError{Message: "bad input"}).Error())
}
