package calculator

// Warm-up offsets: the input index that an indicator's first output value
// belongs to. They depend only on the periods.

func EMAOffset(period int) int { return period - 1 }

func RSIOffset(period int) int { return period }

func MACDOffset(slow, signal int) int { return slow - 1 + signal - 1 }
