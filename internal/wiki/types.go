package wiki

// Item is one row of the upstream /mapping catalog.
type Item struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Members  bool   `json:"members"`
	Limit    int    `json:"limit"` // GE buy limit per 4h window, 0 = none published
	Value    int    `json:"value"`
	HighAlch int    `json:"highalch"`
	LowAlch  int    `json:"lowalch"`
	Examine  string `json:"examine"`
}

// Quote is the latest instant-trade observation for one item.
// High is the instant-buy price (someone sells to us at this level when we
// list a sell offer); Low is the instant-sell price (our buy offer fills
// around here). A missing side decodes as 0.
type Quote struct {
	High     int64 `json:"high"`
	Low      int64 `json:"low"`
	HighTime int64 `json:"highTime"` // unix seconds of the last high-side trade
	LowTime  int64 `json:"lowTime"`  // unix seconds of the last low-side trade
}

// TimeseriesPoint is one bucket of the /timeseries endpoint. Price fields are
// pointers because the upstream reports null for buckets without trades.
type TimeseriesPoint struct {
	Timestamp       int64  `json:"timestamp"`
	AvgHighPrice    *int64 `json:"avgHighPrice"`
	AvgLowPrice     *int64 `json:"avgLowPrice"`
	HighPriceVolume *int64 `json:"highPriceVolume"`
	LowPriceVolume  *int64 `json:"lowPriceVolume"`
}

// GuidePrice is the official catalogue guide price for an item.
type GuidePrice struct {
	Price int64  `json:"price"`
	Trend string `json:"trend"`
}

// latestResponse mirrors the /latest envelope. Keys are stringified item ids.
type latestResponse struct {
	Data map[string]Quote `json:"data"`
}

// volumesResponse mirrors the /volumes envelope.
type volumesResponse struct {
	Data map[string]int64 `json:"data"`
}

// timeseriesResponse mirrors the /timeseries envelope.
type timeseriesResponse struct {
	Data []TimeseriesPoint `json:"data"`
}
