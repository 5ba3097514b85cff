package image

// Vecs is the channel packing factor: four scalar channel values are stored
// together as one addressable texel.
const Vecs = 4

// Vec4 is one packed texel: four float32 channel values.
type Vec4 [Vecs]float32

// Add returns the element-wise sum v + w.
func (v Vec4) Add(w Vec4) Vec4 {
	return Vec4{v[0] + w[0], v[1] + w[1], v[2] + w[2], v[3] + w[3]}
}

// Mul returns the element-wise product v * w.
func (v Vec4) Mul(w Vec4) Vec4 {
	return Vec4{v[0] * w[0], v[1] * w[1], v[2] * w[2], v[3] * w[3]}
}

// Dot returns the dot product of v and w.
func (v Vec4) Dot(w Vec4) float32 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] + v[3]*w[3]
}

// MulAdd returns v + a*b, the element-wise multiply-accumulate.
func (v Vec4) MulAdd(a, b Vec4) Vec4 {
	return Vec4{
		v[0] + a[0]*b[0],
		v[1] + a[1]*b[1],
		v[2] + a[2]*b[2],
		v[3] + a[3]*b[3],
	}
}

// Scale returns v scaled by s.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}
