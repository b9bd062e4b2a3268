package sqlstore

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/storage"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		if err := applySetting(&settings, key, value); err != nil {
			return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings %w", storage.ErrNotFound)
	}
	return settings, nil
}

func applySetting(st *models.Settings, key, value string) error {
	var err error
	atoi := func(dst *int) { *dst, err = strconv.Atoi(value) }
	atof := func(dst *float64) { *dst, err = strconv.ParseFloat(value, 64) }

	switch key {
	case constants.SettingUserID:
		st.UserID = value
	case constants.SettingTimezone:
		st.Timezone = value
	case constants.SettingWorkHours:
		hours := make(map[time.Weekday]models.WorkHours)
		err = json.Unmarshal([]byte(value), &hours)
		st.WorkHours = hours
	case constants.SettingPreferredSessionMins:
		err = json.Unmarshal([]byte(value), &st.PreferredSessionMins)
	case constants.SettingMinSessionMin:
		atoi(&st.MinSessionMin)
	case constants.SettingMaxSessionMin:
		atoi(&st.MaxSessionMin)
	case constants.SettingBreakMin:
		atoi(&st.BreakMin)
	case constants.SettingMaxTaskMinPerDay:
		atoi(&st.MaxTaskMinPerDay)
	case constants.SettingMinSpacingDays:
		atoi(&st.MinSpacingDays)
	case constants.SettingMaxStudyMinPerDay:
		atoi(&st.MaxStudyMinPerDay)
	case constants.SettingNominalSessionMin:
		atoi(&st.NominalSessionMin)
	case constants.SettingSaturationThreshold:
		atof(&st.SaturationThreshold)
	case constants.SettingPriorityDifficultyWt:
		atof(&st.PriorityDifficultyWt)
	case constants.SettingPriorityImportanceWt:
		atof(&st.PriorityImportanceWt)
	case constants.SettingPrioritySlackEpsilon:
		atof(&st.PrioritySlackEpsilon)
	}
	return err
}

func (s *Store) SaveSettings(settings models.Settings) error {
	workHours, err := json.Marshal(settings.WorkHours)
	if err != nil {
		return fmt.Errorf("encoding work hours: %w", err)
	}
	preferred, err := json.Marshal(settings.PreferredSessionMins)
	if err != nil {
		return fmt.Errorf("encoding preferred session lengths: %w", err)
	}
	ftoa := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

	values := [][2]string{
		{constants.SettingUserID, settings.UserID},
		{constants.SettingTimezone, settings.Timezone},
		{constants.SettingWorkHours, string(workHours)},
		{constants.SettingPreferredSessionMins, string(preferred)},
		{constants.SettingMinSessionMin, strconv.Itoa(settings.MinSessionMin)},
		{constants.SettingMaxSessionMin, strconv.Itoa(settings.MaxSessionMin)},
		{constants.SettingBreakMin, strconv.Itoa(settings.BreakMin)},
		{constants.SettingMaxTaskMinPerDay, strconv.Itoa(settings.MaxTaskMinPerDay)},
		{constants.SettingMinSpacingDays, strconv.Itoa(settings.MinSpacingDays)},
		{constants.SettingMaxStudyMinPerDay, strconv.Itoa(settings.MaxStudyMinPerDay)},
		{constants.SettingNominalSessionMin, strconv.Itoa(settings.NominalSessionMin)},
		{constants.SettingSaturationThreshold, ftoa(settings.SaturationThreshold)},
		{constants.SettingPriorityDifficultyWt, ftoa(settings.PriorityDifficultyWt)},
		{constants.SettingPriorityImportanceWt, ftoa(settings.PriorityImportanceWt)},
		{constants.SettingPrioritySlackEpsilon, ftoa(settings.PrioritySlackEpsilon)},
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(s.rebind(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value"))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, kv := range values {
		if _, err := stmt.Exec(kv[0], kv[1]); err != nil {
			return fmt.Errorf("saving %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}
