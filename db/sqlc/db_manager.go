package sqlc

import "time"

const (
	QuerierCtxTimeout = time.Second * 10
)

type DbManager struct {
	Hangar    *HangarManager
	Analytics *AnalyticsManager
}

func NewDbManager(queries Querier) DbManager {
	return DbManager{
		Hangar:    NewHangarManager(queries),
		Analytics: NewAnalyticsManager(queries),
	}
}
