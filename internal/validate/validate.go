// Package validate 实现纯函数的字段校验：无 I/O、无副作用，
// 规则按固定优先级短路，只报第一条被违反的规则。
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go-user-registry/internal/apperr"
)

// SpecialChars 密码必须包含的特殊字符集合（精确集合，不含其它标点）
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

// Policy 校验策略。历史部署存在阈值漂移（30/50、6/8、是否允许下划线等），
// 统一成一份可配置策略，不分叉逻辑。
type Policy struct {
	UsernameMin        int
	UsernameMax        int
	AllowUnderscore    bool
	PasswordMin        int
	PasswordMax        int
	ForbidTripleRepeat bool
	RequireEmail       bool
}

// DefaultPolicy 默认档位：50/8、允许下划线、不启用三连字符规则、邮箱必填
func DefaultPolicy() Policy {
	return Policy{
		UsernameMin:     3,
		UsernameMax:     50,
		AllowUnderscore: true,
		PasswordMin:     8,
		PasswordMax:     100,
		RequireEmail:    true,
	}
}

var (
	reUsername       = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	reUsernameStrict = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	// 刻意的浅层校验：非空白非@ + @ + 非空白非@ + . + 非空白非@，不做完整 RFC
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Username 校验用户名，成功时返回去除首尾空白后的值
func (p Policy) Username(raw string) (string, error) {
	if raw == "" {
		return "", apperr.Validation("username is required")
	}
	v := strings.TrimSpace(raw)
	// 长度按字符数（rune）算，不按字节
	if n := utf8.RuneCountInString(v); n < p.UsernameMin {
		return "", apperr.Validation(fmt.Sprintf("username must be at least %d characters", p.UsernameMin))
	} else if n > p.UsernameMax {
		return "", apperr.Validation(fmt.Sprintf("username must be at most %d characters", p.UsernameMax))
	}
	re := reUsername
	allowed := "letters, digits and underscores"
	if !p.AllowUnderscore {
		re = reUsernameStrict
		allowed = "letters and digits"
	}
	if !re.MatchString(v) {
		return "", apperr.Validation("username may only contain " + allowed)
	}
	if !isLetter(rune(v[0])) {
		return "", apperr.Validation("username must start with a letter")
	}
	return v, nil
}

// Password 校验密码。成功时原样返回：密码永不 trim、永不改大小写。
func (p Policy) Password(raw string) (string, error) {
	if raw == "" {
		return "", apperr.Validation("password is required")
	}
	if n := utf8.RuneCountInString(raw); n < p.PasswordMin {
		return "", apperr.Validation(fmt.Sprintf("password must be at least %d characters", p.PasswordMin))
	} else if n > p.PasswordMax {
		return "", apperr.Validation(fmt.Sprintf("password must be at most %d characters", p.PasswordMax))
	}
	var lower, upper, digit, special bool
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(SpecialChars, r):
			special = true
		}
	}
	switch {
	case !lower:
		return "", apperr.Validation("password must contain a lowercase letter")
	case !upper:
		return "", apperr.Validation("password must contain an uppercase letter")
	case !digit:
		return "", apperr.Validation("password must contain a digit")
	case !special:
		return "", apperr.Validation(`password must contain a special character (` + SpecialChars + `)`)
	}
	if p.ForbidTripleRepeat && hasTripleRepeat(raw) {
		return "", apperr.Validation("password must not repeat the same character three times in a row")
	}
	return raw, nil
}

// Email 校验邮箱，成功时返回 trim + 小写后的值。
// RequireEmail=false 时允许为空（返回空串）。
func (p Policy) Email(raw string) (string, error) {
	if raw == "" {
		if p.RequireEmail {
			return "", apperr.Validation("email is required")
		}
		return "", nil
	}
	v := strings.ToLower(strings.TrimSpace(raw))
	if !reEmail.MatchString(v) {
		return "", apperr.Validation("invalid email format")
	}
	return v, nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func hasTripleRepeat(s string) bool {
	rs := []rune(s)
	for i := 2; i < len(rs); i++ {
		if rs[i] == rs[i-1] && rs[i] == rs[i-2] {
			return true
		}
	}
	return false
}
