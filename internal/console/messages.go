package console

import (
	"fmt"
	"strings"
)

// Operator-facing status texts. The console is used by Japanese-speaking
// kitchen staff, so every message shown in the status slot is Japanese.
const (
	msgFileSelected    = "ファイルが選択されました。アップロードボタンをクリックしてください。"
	msgWrongType       = "CSVファイルのみアップロード可能です。"
	msgTooLarge        = "ファイルサイズは10MB以下にしてください。"
	msgFileUnreadable  = "ファイルを読み込めませんでした。"
	msgNoFileSelected  = "ファイルが選択されていません。"
	msgUploading       = "ファイルをアップロード中..."
	msgParsingTx       = "取引データを解析・抽出中..."
	msgUploadFailed    = "アップロードに失敗しました。"
	msgUploadTransport = "アップロード中にエラーが発生しました。"

	msgTemplateDone       = "テンプレートをダウンロードしました。"
	msgTemplateFailed     = "テンプレートのダウンロードに失敗しました。"
	msgTxTemplateDone     = "取引データテンプレートをダウンロードしました。"
	msgTxTemplateFailed   = "取引データテンプレートのダウンロードに失敗しました。"
	msgDataFailed         = "データの取得に失敗しました。"
	msgDataTransport      = "データの取得中にエラーが発生しました。"
	msgExportDone         = "データをエクスポートしました。"
	msgExportFailed       = "データのエクスポートに失敗しました。"
	msgExportTransport    = "データのエクスポート中にエラーが発生しました。"
	msgSaveFailed         = "ファイルの保存に失敗しました。"
	msgClearFailed        = "データのクリアに失敗しました。"
	msgClearTransport     = "データのクリア中にエラーが発生しました。"
	msgClearConfirmNeeded = "確認のため「クリア」と入力してください。"
	msgClearNoTarget      = "クリアする対象を選択してください。"
)

func costMasterUploaded(count int) string {
	return fmt.Sprintf("アップロード完了！%d件のデータが登録されました。", count)
}

func transactionsUploaded(processed, extracted, saved int) string {
	return fmt.Sprintf("取引データ処理完了！\n処理: %d件\n抽出: %d件\n保存: %d件", processed, extracted, saved)
}

func dataCleared(targets []string) string {
	return fmt.Sprintf("データをクリアしました: %s", strings.Join(targets, "、"))
}
