package cart

// Discount maps a subtotal and an optional coupon to the amount taken off,
// in minor units. It never returns more than subtotal or less than zero.
//
// A positive AmountOff is checked first; a positive PercentOff second.
// Percentages round half up to the nearest minor unit.
func Discount(subtotal int64, coupon *Coupon) int64 {
	if coupon == nil || subtotal <= 0 {
		return 0
	}

	if coupon.AmountOff != nil && *coupon.AmountOff > 0 {
		if *coupon.AmountOff > subtotal {
			return subtotal
		}
		return *coupon.AmountOff
	}

	if coupon.PercentOff != nil && *coupon.PercentOff > 0 {
		pct := *coupon.PercentOff
		if pct > 100 {
			pct = 100
		}
		return (subtotal*pct + 50) / 100
	}

	return 0
}
