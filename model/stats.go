package model

// Stats is the aggregate view served by the stats endpoint.
type Stats struct {
	TotalBooks     int            `json:"totalBooks"`
	TotalComments  int            `json:"totalComments"`
	TotalFeedback  int            `json:"totalFeedback"`
	TotalViews     int            `json:"totalViews"`
	TotalLikes     int            `json:"totalLikes"`
	AverageRating  float64        `json:"averageRating"`
	GenreCounts    map[string]int `json:"genreCounts"`
	AgeGroupCounts map[string]int `json:"ageGroupCounts"`
	RecentBooks    []*Book        `json:"recentBooks"`
}
