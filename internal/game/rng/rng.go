// Package rng 提供开奖使用的随机源。
//
// 生产环境使用加密安全随机数；测试使用可设种子的伪随机数，
// 便于复现统计性质。
package rng

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand"
	"sync"
)

// RandomGenerator 随机数生成器接口
type RandomGenerator interface {
	// Next 生成下一个随机数 [0, 1)
	Next() float64
	// NextInt 生成 [min, max) 范围内的随机整数
	NextInt(min, max int) int
}

// CryptoRandomGenerator 加密安全的随机数生成器
type CryptoRandomGenerator struct{}

// NewCryptoRandomGenerator 创建加密随机数生成器
func NewCryptoRandomGenerator() *CryptoRandomGenerator {
	return &CryptoRandomGenerator{}
}

// Next 生成下一个随机数 [0, 1)
func (g *CryptoRandomGenerator) Next() float64 {
	max := big.NewInt(1 << 53)
	n, _ := rand.Int(rand.Reader, max)
	return float64(n.Int64()) / float64(int64(1)<<53)
}

// NextInt 生成 [min, max) 范围内的随机整数
func (g *CryptoRandomGenerator) NextInt(min, max int) int {
	if min >= max {
		return min
	}
	diff := big.NewInt(int64(max - min))
	n, _ := rand.Int(rand.Reader, diff)
	return min + int(n.Int64())
}

// SeededRandomGenerator 可设种子的随机数生成器（测试用）
type SeededRandomGenerator struct {
	mu  sync.Mutex
	rnd *mathrand.Rand
}

// NewSeededRandomGenerator 创建可设种子的随机数生成器
func NewSeededRandomGenerator(seed int64) *SeededRandomGenerator {
	return &SeededRandomGenerator{
		rnd: mathrand.New(mathrand.NewSource(seed)),
	}
}

// Next 生成下一个随机数 [0, 1)
func (g *SeededRandomGenerator) Next() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Float64()
}

// NextInt 生成 [min, max) 范围内的随机整数
func (g *SeededRandomGenerator) NextInt(min, max int) int {
	if min >= max {
		return min
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return min + g.rnd.Intn(max-min)
}
