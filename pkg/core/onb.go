package core

import "math"

// ONB is an orthonormal basis with W aligned to a given normal
type ONB struct {
	U, V, W Vec3
}

// NewONB builds a basis around n (Duff et al. branchless construction).
// n must be unit length.
func NewONB(n Vec3) ONB {
	sign := math.Copysign(1, n.Z)
	a := -1.0 / (sign + n.Z)
	b := n.X * n.Y * a
	u := Vec3{1 + sign*n.X*n.X*a, sign * b, -sign * n.X}
	v := Vec3{b, sign + n.Y*n.Y*a, -n.Y}
	return ONB{U: u, V: v, W: n}
}

// ToWorld maps a local-frame vector to world space
func (o ONB) ToWorld(local Vec3) Vec3 {
	return o.U.Multiply(local.X).Add(o.V.Multiply(local.Y)).Add(o.W.Multiply(local.Z))
}

// ToLocal maps a world-space vector into the frame
func (o ONB) ToLocal(world Vec3) Vec3 {
	return Vec3{world.Dot(o.U), world.Dot(o.V), world.Dot(o.W)}
}
