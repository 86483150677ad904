package service

// Stats summarizes the collection.
type Stats struct {
	Total      int `json:"total" yaml:"total"`
	Completed  int `json:"completed" yaml:"completed"`
	Incomplete int `json:"incomplete" yaml:"incomplete"`
	Overdue    int `json:"overdue" yaml:"overdue"`
	DueToday   int `json:"dueToday" yaml:"dueToday"`
}

// Stats counts tasks by completion and, for incomplete tasks, by due date.
func (s *Service) Stats() (Stats, error) {
	list, err := s.load()
	if err != nil {
		return Stats{}, err
	}
	today := s.Today()

	var st Stats
	for _, t := range list {
		st.Total++
		if t.Completed {
			st.Completed++
			continue
		}
		st.Incomplete++
		if t.DueDate == nil {
			continue
		}
		switch t.DueDate.Compare(today) {
		case -1:
			st.Overdue++
		case 0:
			st.DueToday++
		}
	}
	return st, nil
}
