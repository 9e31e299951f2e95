// Package content holds the agent's message template catalog and the
// weighted category selector.  Pure data: rendering substitutes values
// into placeholders, nothing here touches the network.
package content

// Template is one message shape.  DataKeys names the values the text's
// placeholders require; Render fails if any is absent.
type Template struct {
	Text     string
	DataKeys []string
}

// Category groups templates around one kind of post and carries the
// weight used during selection.
type Category struct {
	Name      string
	Weight    int
	Templates []Template
}

// Catalog returns the static template table.
func Catalog() []Category {
	return []Category{
		{
			Name:   "market_insight",
			Weight: 4,
			Templates: []Template{
				{
					Text:     "{token} at ${price} ({change_24h}% 24h). Volume holding at ${volume_24h}.",
					DataKeys: []string{"token", "price", "change_24h", "volume_24h"},
				},
				{
					Text:     "Watching {token}: ${price} with {change_24h}% on the day.",
					DataKeys: []string{"token", "price", "change_24h"},
				},
			},
		},
		{
			Name:   "pool_spotlight",
			Weight: 3,
			Templates: []Template{
				{
					Text:     "Pool spotlight: {pool} on {protocol}. TVL ${tvl}, {apr}% APR.",
					DataKeys: []string{"pool", "protocol", "tvl", "apr"},
				},
			},
		},
		{
			Name:   "yield_watch",
			Weight: 2,
			Templates: []Template{
				{
					Text:     "Yield watch: {token} earning {apy}% APY via {protocol}.",
					DataKeys: []string{"token", "apy", "protocol"},
				},
			},
		},
		{
			Name:   "ta_signal",
			Weight: 1,
			Templates: []Template{
				{
					Text:     "TA on {token}: RSI {rsi}, trend {trend}. Support near ${support}.",
					DataKeys: []string{"token", "rsi", "trend", "support"},
				},
			},
		},
	}
}
