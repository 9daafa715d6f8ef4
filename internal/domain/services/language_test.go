package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	d := NewLanguageIdentifier()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"english", "your bank account will be suspended, verify it now", "en"},
		{"hindi", "आपका बैंक खाता ब्लॉक हो गया है तुरंत सत्यापित करें", "hi"},
		{"bengali", "আপনার ব্যাংক অ্যাকাউন্ট ব্লক করা হয়েছে", "bn"},
		{"tamil", "உங்கள் வங்கி கணக்கு முடக்கப்பட்டது", "ta"},
		{"arabic", "تم حظر حسابك المصرفي", "ar"},
		{"russian", "ваш банковский счет заблокирован", "ru"},
		{"chinese", "您的银行账户已被冻结请立即验证", "zh"},
		{"spanish", "el banco ha bloqueado su cuenta por una actividad", "es"},
		{"too short", "ok", "unknown"},
		{"digits only", "1234567890", "unknown"},
		{"empty", "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.Detect(tt.input))
		})
	}
}

func TestDetectNeverFails(t *testing.T) {
	d := NewLanguageIdentifier()

	// Detection always returns a code, whatever the input.
	for _, input := range []string{"", "???", "\x00\x01", "🎉🎉🎉"} {
		code := d.Detect(input)
		assert.NotEmpty(t, code)
	}
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "English", LanguageName("en"))
	assert.Equal(t, "Hindi", LanguageName("hi"))
	assert.Equal(t, "Unknown", LanguageName("unknown"))
	assert.Equal(t, "XX", LanguageName("xx"))
}
