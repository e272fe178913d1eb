package domain

// ValidationError 呼叫端輸入或前置條件錯誤
// 發生時不會有任何狀態被修改
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Is 讓 errors.Is 可以用種類 (ErrValidation) 或完全相同的訊息比對
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Msg == "" || t.Msg == e.Msg
}

var (
	// ErrValidation 種類比對用，任何 ValidationError 都符合
	ErrValidation = &ValidationError{}

	// ErrInvalidUserID 使用者 ID 缺失或為負數
	ErrInvalidUserID = &ValidationError{Msg: "user id is required"}

	// ErrNegativeCharge 充值金額為負數
	ErrNegativeCharge = &ValidationError{Msg: "negative charge"}

	// ErrNegativeUse 使用金額為負數
	ErrNegativeUse = &ValidationError{Msg: "negative use"}

	// ErrBalanceCapExceeded 充值後超過上限
	ErrBalanceCapExceeded = &ValidationError{Msg: "balance cap exceeded"}

	// ErrInsufficientBalance 餘額不足
	ErrInsufficientBalance = &ValidationError{Msg: "insufficient balance"}
)
