package server

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.Vietnamese)

// FormatPrice 将最小货币单位格式化为带千分位的越南盾（例如 15000000 -> 15.000.000₫）。
func FormatPrice(price int64) string {
	return pricePrinter.Sprintf("%d₫", price)
}
