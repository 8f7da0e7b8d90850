package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt 算法只消费前 72 字节；策略允许密码到 100 字符，
// 超出部分按经典 bcrypt 语义截断，Hash 与 Check 必须同样处理
const maxPasswordBytes = 72

// Hasher bcrypt 封装，cost 由配置注入（默认 bcrypt.DefaultCost = 10）
type Hasher struct{ Cost int }

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{Cost: cost}
}

func (h *Hasher) Hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(truncate(pw), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Check 使用 bcrypt 自带的恒定时间比较，绝不做明文相等判断
func (h *Hasher) Check(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), truncate(pw)) == nil
}

func truncate(pw string) []byte {
	b := []byte(pw)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
