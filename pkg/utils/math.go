package utils

import "math"

// 角度换算常量
const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

// normalizeEpsilon 向量长度低于此值时视为零向量
const normalizeEpsilon = 1e-5

// Vec2 二维向量（世界坐标，X 向右，Y 向上）
type Vec2 struct {
	X, Y float64
}

// Add 向量相加
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 向量相减
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 数乘
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len 向量长度
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized 返回单位向量
// 长度过小时返回零向量（与目标重合时不产生 NaN）
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < normalizeEpsilon {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// DirectionFromDegrees 返回指定朝向（度）的单位向量 (cos, sin)
func DirectionFromDegrees(deg float64) Vec2 {
	rad := deg * Deg2Rad
	return Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
}

// NormalizeDegrees 将角度规范到 [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -1e-15 之类的值 +360 后可能恰好等于 360
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// LerpDegrees 按最短弧在两个朝向之间插值，返回 [0, 360) 内的角度
//
// 插值在半角单位复数（二维旋转四元数）上进行并重新归一化，
// 因此 t 与转过角度并非严格线性，靠近 0.5 时略快。
//
// 参数:
//   - from: 当前朝向（度）
//   - to: 目标朝向（度）
//   - t: 插值系数，超出 [0, 1] 时会被截断
func LerpDegrees(from, to, t float64) float64 {
	t = Clamp01(t)

	a := from * Deg2Rad / 2
	b := to * Deg2Rad / 2
	ac, as := math.Cos(a), math.Sin(a)
	bc, bs := math.Cos(b), math.Sin(b)

	// q 与 -q 表示同一旋转，取点积非负的一侧
	if ac*bc+as*bs < 0 {
		bc, bs = -bc, -bs
	}

	c := ac + (bc-ac)*t
	s := as + (bs-as)*t
	if c == 0 && s == 0 {
		return NormalizeDegrees(from)
	}

	return NormalizeDegrees(2 * math.Atan2(s, c) * Rad2Deg)
}
