package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtonBar_FocusTraversal(t *testing.T) {
	bar := NewButtonBar(CreateBackNextButtons(true, true, "Next →"))

	bar.FocusFirst()
	assert.Equal(t, ButtonBack, bar.FocusedButton())

	assert.True(t, bar.FocusNext())
	assert.Equal(t, ButtonNext, bar.FocusedButton())

	// Past the last button: caller takes focus back.
	assert.False(t, bar.FocusNext())

	bar.FocusLast()
	assert.True(t, bar.FocusPrev())
	assert.Equal(t, ButtonBack, bar.FocusedButton())
	assert.False(t, bar.FocusPrev())
}

func TestButtonBar_DisabledButtonsSkipped(t *testing.T) {
	bar := NewButtonBar(CreateBackNextButtons(false, true, "Submit"))

	// Back is disabled on the first step, so first focus lands on Submit.
	bar.FocusFirst()
	assert.Equal(t, ButtonNext, bar.FocusedButton())
	assert.False(t, bar.FocusPrev(), "no enabled button before Submit")
}

func TestButtonBar_BlurClearsFocusState(t *testing.T) {
	bar := NewButtonBar(CreateBackNextButtons(true, true, "Next →"))
	bar.FocusFirst()
	bar.Blur()

	for _, btn := range bar.buttons {
		assert.NotEqual(t, ButtonFocused, btn.State)
	}
}
