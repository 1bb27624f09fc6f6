package api

import (
	"fmt"
	"testing"
	"time"

	"github.com/newsdeck/newsdeck/model"
	"github.com/newsdeck/newsdeck/utils"
	"github.com/stretchr/testify/require"
)

func TestRecordViewIsIdempotent(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	userID := utils.TestCreateUser(t, db, "reader", true)
	articleID := utils.TestCreateArticle(t, db, "viewed", 1, time.Now())

	require.NoError(t, RecordView(db, userID, articleID))

	var first model.ViewHistory
	require.NoError(t, db.Where("user_id = ? AND article_id = ?", userID, articleID).First(&first).Error)

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, RecordView(db, userID, articleID))

	var rows []model.ViewHistory
	require.NoError(t, db.Where("user_id = ?", userID).Find(&rows).Error)
	require.Len(t, rows, 1)
	require.True(t, rows[0].ViewedAt.After(first.ViewedAt), "second view must refresh the timestamp")
}

func TestGetHistoryOrderAndLimit(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	userID := utils.TestCreateUser(t, db, "reader", true)

	now := time.Now().Truncate(time.Second)
	for i := 0; i < 12; i++ {
		articleID := utils.TestCreateArticle(t, db, fmt.Sprintf("h-%d", i), 1, now)
		utils.TestRecordViewAt(t, db, userID, articleID, now.Add(time.Duration(i)*time.Minute))
	}

	history, err := GetHistory(db, userID, 0)
	require.NoError(t, err)
	require.Len(t, history, defaultHistoryLimit)
	require.Equal(t, "h-11", history[0].Title)
	for i := 1; i < len(history); i++ {
		require.True(t, !history[i].ViewedAt.After(history[i-1].ViewedAt), "history must be newest first")
	}

	short, err := GetHistory(db, userID, 3)
	require.NoError(t, err)
	require.Len(t, short, 3)
}

func TestGetHistoryDropsDeletedArticles(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	userID := utils.TestCreateUser(t, db, "reader", true)

	now := time.Now().Truncate(time.Second)
	kept := utils.TestCreateArticle(t, db, "kept", 1, now)
	gone := utils.TestCreateArticle(t, db, "gone", 1, now)
	utils.TestRecordViewAt(t, db, userID, kept, now.Add(-2*time.Minute))
	utils.TestRecordViewAt(t, db, userID, gone, now.Add(-1*time.Minute))

	require.NoError(t, db.Delete(&model.Article{}, gone).Error)

	history, err := GetHistory(db, userID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "kept", history[0].Title)
}

func TestRecordViewWithoutHistorySchemaIsNoOp(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	userID := utils.TestCreateUser(t, db, "reader", true)
	require.NoError(t, db.Migrator().DropTable(&model.ViewHistory{}))

	require.NoError(t, RecordView(db, userID, 1))

	history, err := GetHistory(db, userID, 10)
	require.NoError(t, err)
	require.Empty(t, history)
}
