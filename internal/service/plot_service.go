package service

import "sort"

// seriesPalette assigns each user a stable line colour by alphabetical
// position, wrapping after twenty users.
var seriesPalette = []string{
	"#FF4444", "#00FF88", "#4488FF", "#FFBB00", "#FF8844",
	"#BB44FF", "#00FFFF", "#FF44BB", "#88FF44", "#FF6600",
	"#0088FF", "#FF0088", "#AAFF00", "#8800FF", "#00FF44",
	"#FF2200", "#0044FF", "#FFAA44", "#FF4400", "#44AAFF",
}

// PlotPoint is one sample in a user's series. Y is nil on days the user
// did not play; a null marker, never a zero.
type PlotPoint struct {
	X int  `json:"x"`
	Y *int `json:"y"`
}

// PlotSeries is one user's full score series across every known day
type PlotSeries struct {
	Name  string      `json:"name"`
	Color string      `json:"color"`
	Data  []PlotPoint `json:"data"`
}

// PlotData is the chart-ready projection of the whole store
type PlotData struct {
	Days  []int        `json:"days"`
	Users []PlotSeries `json:"users"`
}

// PlotData projects every user's numeric scores over every known day,
// sorted ascending, with explicit nulls where a user has no result.
func (s *StatsService) PlotData() (*PlotData, error) {
	days, err := s.streakRepo.ListDays()
	if err != nil {
		return nil, err
	}
	rows, err := s.resultRepo.AllRows()
	if err != nil {
		return nil, err
	}

	scores := make(map[string]map[int]int)
	for _, row := range rows {
		byDay := scores[row.Username]
		if byDay == nil {
			byDay = make(map[int]int)
			scores[row.Username] = byDay
		}
		byDay[row.Day] = row.Score.Numeric()
	}

	usernames := make([]string, 0, len(scores))
	for name := range scores {
		usernames = append(usernames, name)
	}
	sort.Strings(usernames)

	plot := &PlotData{Days: days}
	for i, username := range usernames {
		series := PlotSeries{
			Name:  username,
			Color: seriesPalette[i%len(seriesPalette)],
			Data:  make([]PlotPoint, 0, len(days)),
		}
		for _, day := range days {
			point := PlotPoint{X: day}
			if score, ok := scores[username][day]; ok {
				v := score
				point.Y = &v
			}
			series.Data = append(series.Data, point)
		}
		plot.Users = append(plot.Users, series)
	}
	return plot, nil
}
