package orchestrator

import (
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/support/logger"
)

const dateLayout = "2006-01-02"

// DateRange expands one league season window into per-day calendar records,
// inclusive of both endpoints.
func DateRange(leagueKey, season string, start, end time.Time) []record.Record {
	if end.Before(start) {
		return nil
	}
	var out []record.Record
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		out = append(out, record.Record{
			"date":       record.Date(day),
			"league_key": record.String(leagueKey),
			"season":     record.String(season),
		})
	}
	return out
}

// windowField reads a season-window field from the league record, falling
// back to its nested "settings" sub-record where the extractor puts it.
func windowField(league record.Record, field string) string {
	if v, ok := league.StringField(field); ok && v != "" {
		return v
	}
	if settings, ok := league.ChildRecord("settings"); ok {
		v, _ := settings.StringField(field)
		return v
	}
	return ""
}

// synthesizeDates builds the calendar dataset from the season windows of the
// league records, for snapshots that carry no explicit dates dataset. Leagues
// without a parseable window contribute nothing.
func synthesizeDates(leagues []record.Record) []record.Record {
	var out []record.Record
	for _, league := range leagues {
		leagueKey, ok := league.StringField("league_key")
		if !ok {
			continue
		}
		season, _ := league.StringField("season")
		startRaw := windowField(league, "start_date")
		endRaw := windowField(league, "end_date")

		start, err := time.Parse(dateLayout, startRaw)
		if err != nil {
			logger.Warnf("%s: league %s has no usable start_date, skipping calendar synthesis", moduleName, leagueKey)
			continue
		}
		end, err := time.Parse(dateLayout, endRaw)
		if err != nil {
			logger.Warnf("%s: league %s has no usable end_date, skipping calendar synthesis", moduleName, leagueKey)
			continue
		}
		out = append(out, DateRange(leagueKey, season, start, end)...)
	}
	return out
}
