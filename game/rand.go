package game

import (
	"math/rand"
	"sync"
)

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// Source 封装 math/rand，提供并发安全的 ID/密码生成。
// 测试可以用固定种子构造，让谜题密码可预测。
type Source struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewSource(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// ID 生成 n 位小写字母+数字的标识符
func (s *Source) ID(n int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := make([]byte, n)
	for i := range b {
		b[i] = idCharset[s.r.Intn(len(idCharset))]
	}
	return string(b)
}

// Digits 生成 n 位数字串，用作谜题密码
func (s *Source) Digits(n int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + s.r.Intn(10))
	}
	return string(b)
}
