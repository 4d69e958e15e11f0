package indicators

import (
	"fmt"

	"github.com/rustyeddy/candles/market"
	"github.com/shopspring/decimal"
)

// SimpleMA is a streaming Simple Moving Average over the last period closes.
type SimpleMA struct {
	period int
	prec   market.Precision
	window []decimal.Decimal
	sum    decimal.Decimal
}

// NewMA creates a Simple Moving Average with the given period. Values are
// rounded to prec places.
func NewMA(period int, prec market.Precision) *SimpleMA {
	if period <= 0 {
		panic("MA period must be > 0")
	}
	return &SimpleMA{
		period: period,
		prec:   prec,
		window: make([]decimal.Decimal, 0, period),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.period)
}

func (m *SimpleMA) Warmup() int {
	return m.period
}

func (m *SimpleMA) Reset() {
	m.window = m.window[:0]
	m.sum = decimal.Zero
}

func (m *SimpleMA) Update(c market.Candle) {
	m.window = append(m.window, c.Close)
	m.sum = m.sum.Add(c.Close)
	// Keep only the last 'period' closes
	if len(m.window) > m.period {
		m.sum = m.sum.Sub(m.window[0])
		m.window = m.window[1:]
	}
}

func (m *SimpleMA) Ready() bool {
	return len(m.window) >= m.period
}

func (m *SimpleMA) Value() decimal.Decimal {
	if !m.Ready() {
		return decimal.Zero
	}
	return m.prec.Div(m.sum, decimal.NewFromInt(int64(m.period)))
}

// ExponentialMA is a streaming Exponential Moving Average. The first value is
// the SMA of the first period closes; every later close applies
// ema = close*alpha + ema*(1-alpha) with alpha = 2/(period+1).
//
// Alpha is never rounded on its own. Each step is evaluated as
// (2*close + (period-1)*ema) / (period+1) and only that quotient is rounded
// to the precision.
type ExponentialMA struct {
	period int
	prec   market.Precision
	carry  decimal.Decimal // period-1
	denom  decimal.Decimal // period+1

	count     int
	warmupSum decimal.Decimal
	ema       decimal.Decimal
}

var two = decimal.NewFromInt(2)

// NewEMA creates an Exponential Moving Average with the given period.
func NewEMA(period int, prec market.Precision) *ExponentialMA {
	if period <= 0 {
		panic("EMA period must be > 0")
	}
	return &ExponentialMA{
		period: period,
		prec:   prec,
		carry:  decimal.NewFromInt(int64(period - 1)),
		denom:  decimal.NewFromInt(int64(period + 1)),
	}
}

func (e *ExponentialMA) Name() string {
	return fmt.Sprintf("EMA(%d)", e.period)
}

func (e *ExponentialMA) Warmup() int {
	return e.period
}

func (e *ExponentialMA) Reset() {
	e.count = 0
	e.warmupSum = decimal.Zero
	e.ema = decimal.Zero
}

func (e *ExponentialMA) Update(c market.Candle) {
	if e.count < e.period {
		// During warmup, accumulate sum for the SMA seed
		e.warmupSum = e.warmupSum.Add(c.Close)
		e.count++
		if e.count == e.period {
			e.ema = e.prec.Div(e.warmupSum, decimal.NewFromInt(int64(e.period)))
		}
		return
	}
	e.ema = e.prec.Div(c.Close.Mul(two).Add(e.ema.Mul(e.carry)), e.denom)
}

func (e *ExponentialMA) Ready() bool {
	return e.count >= e.period
}

func (e *ExponentialMA) Value() decimal.Decimal {
	if !e.Ready() {
		return decimal.Zero
	}
	return e.ema
}
