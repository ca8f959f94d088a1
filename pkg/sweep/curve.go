package sweep

// OperatingPoint is one solved sample of the J-V characteristic.
type OperatingPoint struct {
	V float64 // Applied voltage (V)
	J float64 // Current density (mA/cm²)
}

// Power returns the power density V·J (mW/cm²).
func (op OperatingPoint) Power() float64 {
	return op.V * op.J
}

// Curve is a J-V characteristic over a voltage-ascending grid. It is
// produced once per sweep and never mutated afterwards.
type Curve []OperatingPoint
