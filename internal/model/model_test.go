package model

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUploadMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    UploadMode
		wantErr bool
	}{
		{name: "empty defaults to cost master", input: "", want: ModeCostMaster},
		{name: "cost master", input: "cost_master", want: ModeCostMaster},
		{name: "dashed cost master", input: "Cost-Master", want: ModeCostMaster},
		{name: "transaction", input: "transaction", want: ModeTransaction},
		{name: "unknown", input: "recipes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUploadMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUploadMode_Endpoint(t *testing.T) {
	assert.Equal(t, "/admin/upload", ModeCostMaster.Endpoint())
	assert.Equal(t, "/admin/upload-transaction", ModeTransaction.Endpoint())
	assert.Equal(t, "cost_master", ModeCostMaster.String())
	assert.Equal(t, "transaction", ModeTransaction.String())
}

func TestUploadResult_OK(t *testing.T) {
	assert.True(t, CostMasterSuccess(3).OK())
	assert.True(t, TransactionSuccess(1, 1, 1).OK())
	assert.False(t, UploadFailure(ModeTransaction, "bad header").OK())
}

func TestBytesOpener(t *testing.T) {
	rc, err := BytesOpener("a,b\n1,2\n").Open()
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestClearRequest(t *testing.T) {
	req := ClearRequest{ClearCostMaster: true, ConfirmationPhrase: "クリア"}
	assert.True(t, req.HasTarget())
	assert.True(t, req.Confirmed())
	assert.Equal(t, []string{"原価マスター"}, req.Targets())

	req = ClearRequest{ClearRecipes: true, ConfirmationPhrase: "クリア "}
	assert.False(t, req.Confirmed())
	assert.Equal(t, []string{"レシピ"}, req.Targets())

	assert.False(t, ClearRequest{}.HasTarget())
}

func TestStatusMessage_Visible(t *testing.T) {
	shown := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := StatusMessage{ShownAt: shown, ExpiresAfter: StatusTTL}

	assert.True(t, msg.Visible(shown.Add(2999*time.Millisecond)))
	assert.False(t, msg.Visible(shown.Add(3000*time.Millisecond)))
}

func TestStats_LastUpdateOrDash(t *testing.T) {
	assert.Equal(t, "-", Stats{}.LastUpdateOrDash())
	ts := "2025-06-01 10:00"
	assert.Equal(t, ts, Stats{LastUpdate: &ts}.LastUpdateOrDash())
}

func TestRecipe_CreatedDate(t *testing.T) {
	assert.Equal(t, "2025-03-04", Recipe{CreatedAt: "2025-03-04T09:10:11.123456+00:00"}.CreatedDate())
	assert.Equal(t, "-", Recipe{}.CreatedDate())
	assert.Equal(t, "yesterday", Recipe{CreatedAt: "yesterday"}.CreatedDate())
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "cost_master_template_basic.csv", TemplateFileName("basic"))
	assert.Equal(t, "cost_master_export_2025-02-03.csv", ExportFileName(time.Date(2025, 2, 3, 23, 0, 0, 0, time.UTC)))
}
