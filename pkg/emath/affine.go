package emath

// Affine transformations, used to map between pixel coords and sky coords

import(
	"fmt"
	"golang.org/x/image/math/f64"  // Will be "image/math/f64" at some point, hopefully make this file redundant
)

// Use a local type so we can hang methods off it
type Aff3 f64.Aff3

// Cut-n-pasted from image@0.7.0/draw/scale:matMul
func (p Aff3)Mult(q Aff3) Aff3 {
	return Aff3{
		p[3*0+0]*q[3*0+0] + p[3*0+1]*q[3*1+0],
		p[3*0+0]*q[3*0+1] + p[3*0+1]*q[3*1+1],
		p[3*0+0]*q[3*0+2] + p[3*0+1]*q[3*1+2] + p[3*0+2],
		p[3*1+0]*q[3*0+0] + p[3*1+1]*q[3*1+0],
		p[3*1+0]*q[3*0+1] + p[3*1+1]*q[3*1+1],
		p[3*1+0]*q[3*0+2] + p[3*1+1]*q[3*1+2] + p[3*1+2],
	}
}

func Identity() Aff3 {
	return Aff3{1, 0, 0,   0, 1, 0}
}

func (m1 Aff3)Translate(tx, ty float64) Aff3 {
	return m1.Mult(Aff3{1, 0, tx,   0, 1, ty})
}

func (m1 Aff3)Scale(sx, sy float64) Aff3 {
	return m1.Mult(Aff3{sx, 0, 0,   0, sy, 0})
}

// Apply maps the point (x,y)
func (m Aff3)Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Invert returns the inverse transform; a singular matrix is an error.
func (m Aff3)Invert() (Aff3, error) {
	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 {
		return Aff3{}, fmt.Errorf("affine transform %v is singular", m)
	}

	a :=  m[4] / det
	b := -m[1] / det
	c := -m[3] / det
	d :=  m[0] / det

	return Aff3{
		a, b, -(a*m[2] + b*m[5]),
		c, d, -(c*m[2] + d*m[5]),
	}, nil
}

func (m Aff3)String() string {
	return fmt.Sprintf("[%10f, %10f, %10f; %10f, %10f, %10f]", m[0], m[1], m[2], m[3], m[4], m[5])
}
