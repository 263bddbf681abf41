package entity

// TxStatus mirrors the receipt status of a mined transaction.
type TxStatus string

const (
	TxStatusSuccess  TxStatus = "success"
	TxStatusReverted TxStatus = "reverted"
)

// TxResult describes a mined transaction sent on behalf of the connected wallet.
type TxResult struct {
	Method      string   `json:"method"`
	Hash        string   `json:"hash"`
	Status      TxStatus `json:"status"`
	BlockNumber uint64   `json:"blockNumber"`
	GasUsed     uint64   `json:"gasUsed"`
	ExplorerURL string   `json:"explorerUrl,omitempty"`
}
