package service

import (
	"labbudget/database"
	"labbudget/models"
)

// RecordLogin 追加一筆登入紀錄
func (l *Ledger) RecordLogin(username string) (models.LoginLogEntry, error) {
	unlock := l.locks.lock(models.CollectionLoginLog)
	defer unlock()

	logins, err := database.Load[models.LoginLogEntry](l.store, models.CollectionLoginLog)
	if err != nil {
		return models.LoginLogEntry{}, err
	}
	entry := models.LoginLogEntry{
		Username:  username,
		LoginTime: l.now().Format(models.TimestampLayout),
	}
	if err := database.Save(l.store, models.CollectionLoginLog, append(logins, entry)); err != nil {
		return models.LoginLogEntry{}, err
	}
	return entry, nil
}

// LastLogin 最近一次登入；skip 為略過最新的筆數（剛登入的這次通常要略過）
func (l *Ledger) LastLogin(skip int) (models.LoginLogEntry, bool, error) {
	unlock := l.locks.lock(models.CollectionLoginLog)
	defer unlock()

	logins, err := database.Load[models.LoginLogEntry](l.store, models.CollectionLoginLog)
	if err != nil {
		return models.LoginLogEntry{}, false, err
	}
	i := len(logins) - 1 - skip
	if i < 0 {
		return models.LoginLogEntry{}, false, nil
	}
	return logins[i], true, nil
}
