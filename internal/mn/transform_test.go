package mn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputTransform_Apply(t *testing.T) {
	var identity OutputTransform
	assert.Equal(t, 3.5, identity.Apply(3.5), "the zero value is the identity")

	affine := OutputTransform{Kind: Affine, Scale: 2, Shift: -1}
	assert.Equal(t, 6.0, affine.Apply(3.5))
}

func TestOutputTransform_String(t *testing.T) {
	assert.Equal(t, "identity", OutputTransform{}.String())
	assert.Equal(t, "affine(scale=2, shift=-0.5)", OutputTransform{Kind: Affine, Scale: 2, Shift: -0.5}.String())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "identity", Identity.String())
	assert.Equal(t, "affine", Affine.String())
}
