package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Target  string `binding:"required,objectid"`
	Phone   string `binding:"omitempty,phone"`
	Website string `binding:"omitempty,weburl"`
	Rating  int    `binding:"min=1,max=5"`
	Type    string `binding:"omitempty,posttype"`
	Status  string `binding:"omitempty,casestatus"`
}

func TestRegister_CustomTags(t *testing.T) {
	Register()
	Register()

	ok := sample{Target: "64b7f0c2a1b2c3d4e5f60718", Phone: "+91 98765 43210", Website: "https://redcross.org", Rating: 3, Type: "story", Status: "Verified"}
	require.NoError(t, binding.Validator.ValidateStruct(&ok))

	bad := sample{Target: "nope", Rating: 9, Type: "poem", Status: "verified"}
	err := binding.Validator.ValidateStruct(&bad)
	require.Error(t, err)

	msg := Describe(err)
	require.Contains(t, msg, "target is invalid")
	require.Contains(t, msg, "rating must be at most 5")
	require.Contains(t, msg, "type must be one of [article story guide video infographic]")
	require.Contains(t, msg, "status must be one of [Pending Verified Rejected]")
}

func TestHelpers(t *testing.T) {
	require.True(t, IsValidPhone("+91 98765 43210"))
	require.True(t, IsValidURL("http://example.com/a"))
	require.False(t, IsValidURL("ftp://example.com"))
	require.False(t, IsValidPhone("abc"))
}

func TestRegisterTags_ReportsFailures(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerTags(v, customTags))

	never := func(validator.FieldLevel) bool { return false }
	err := registerTags(validator.New(), map[string]validator.Func{
		"":      never,
		"empty": nil,
		"fine":  never,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), `register ""`)
	require.Contains(t, err.Error(), `register "empty"`)
	require.NotContains(t, err.Error(), `register "fine"`)
}
