package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr string
	}{
		{name: "ok plain", in: "alice", want: "alice"},
		{name: "ok with underscore and digits", in: "abc_123", want: "abc_123"},
		{name: "trims whitespace", in: "  bob  ", want: "bob"},
		{name: "missing", in: "", wantErr: "username is required"},
		{name: "too short", in: "ab", wantErr: "username must be at least 3 characters"},
		{name: "short regardless of content", in: "!@", wantErr: "username must be at least 3 characters"},
		{name: "length counts runes not bytes", in: "éé", wantErr: "username must be at least 3 characters"},
		{name: "too long", in: strings.Repeat("a", 51), wantErr: "username must be at most 50 characters"},
		{name: "bad character", in: "ali-ce", wantErr: "username may only contain letters, digits and underscores"},
		{name: "starts with digit", in: "3abc", wantErr: "username must start with a letter"},
		{name: "starts with underscore", in: "_abc", wantErr: "username must start with a letter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Username(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUsername_StrictProfile(t *testing.T) {
	p := DefaultPolicy()
	p.AllowUnderscore = false
	p.UsernameMax = 30

	_, err := p.Username("abc_123")
	assert.EqualError(t, err, "username may only contain letters and digits")

	_, err = p.Username(strings.Repeat("a", 31))
	assert.EqualError(t, err, "username must be at most 30 characters")

	got, err := p.Username("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)
}

func TestPassword_PriorityOrder(t *testing.T) {
	p := DefaultPolicy() // min 8

	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{name: "missing", in: "", wantErr: "password is required"},
		{name: "too short wins over charset", in: "abcdefg", wantErr: "password must be at least 8 characters"},
		{name: "too long", in: "A1!" + strings.Repeat("a", 98), wantErr: "password must be at most 100 characters"},
		{name: "no lowercase", in: "ABCDEF1!", wantErr: "password must contain a lowercase letter"},
		{name: "no uppercase", in: "abcdef1!", wantErr: "password must contain an uppercase letter"},
		{name: "no digit", in: "Abcdefg!", wantErr: "password must contain a digit"},
		{name: "no special", in: "Abcdefg1", wantErr: `password must contain a special character (` + SpecialChars + `)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Password(tt.in)
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestPassword_Accepts(t *testing.T) {
	p := DefaultPolicy()
	got, err := p.Password("Abcdef1!")
	require.NoError(t, err)
	assert.Equal(t, "Abcdef1!", got, "passwords are returned untouched")

	// 密码不做 trim
	got, err = p.Password("  Abcdef1!  ")
	require.NoError(t, err)
	assert.Equal(t, "  Abcdef1!  ", got)

	// 恰好 100 字符在接受范围内；长度按 rune 计数
	long := "Abcdef1!" + strings.Repeat("a", 92)
	_, err = p.Password(long)
	assert.NoError(t, err)
	_, err = p.Password("Abcdef1!" + strings.Repeat("é", 92))
	assert.NoError(t, err)
}

func TestPassword_MinSixProfile(t *testing.T) {
	p := DefaultPolicy()
	p.PasswordMin = 6
	// 长度过了之后，第一条违反的是大写规则
	_, err := p.Password("abcdefg")
	assert.EqualError(t, err, "password must contain an uppercase letter")
}

func TestPassword_TripleRepeat(t *testing.T) {
	p := DefaultPolicy()

	// 默认档位不启用三连字符规则
	_, err := p.Password("Aaa111!!")
	assert.NoError(t, err)

	p.ForbidTripleRepeat = true
	_, err = p.Password("Aaa111!!")
	require.Error(t, err)
	assert.EqualError(t, err, "password must not repeat the same character three times in a row")

	_, err = p.Password("Aab121!?")
	assert.NoError(t, err)
}

func TestEmail(t *testing.T) {
	p := DefaultPolicy()

	got, err := p.Email("  Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got)

	_, err = p.Email("")
	assert.EqualError(t, err, "email is required")

	for _, bad := range []string{"alice", "alice@example", "a lice@example.com", "alice@@example.com"} {
		_, err = p.Email(bad)
		assert.EqualError(t, err, "invalid email format", "input %q", bad)
	}

	p.RequireEmail = false
	got, err = p.Email("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// 同一输入重复校验必须得到同样的结论与消息
func TestChecksAreIdempotent(t *testing.T) {
	p := DefaultPolicy()
	for i := 0; i < 3; i++ {
		_, err := p.Username("3abc")
		assert.EqualError(t, err, "username must start with a letter")
		_, err = p.Password("abcdefg")
		assert.EqualError(t, err, "password must be at least 8 characters")
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "scriptalert(x)/script", Sanitize(`<script>alert('x')</script>`))
	assert.Equal(t, "plain_user", Sanitize("plain_user"))
	assert.Equal(t, "ab", Sanitize(`a"b'`))
}
