package tx

// Metadata describes the ledger changes made by a committed transaction
type Metadata struct {
	TransactionResult Result         `json:"TransactionResult"`
	AffectedNodes     []AffectedNode `json:"AffectedNodes"`
}

// AffectedNode is one created, modified or deleted ledger entry
type AffectedNode struct {
	NodeType        string `json:"NodeType"` // CreatedNode, ModifiedNode, DeletedNode
	LedgerEntryType string `json:"LedgerEntryType"`
	LedgerIndex     string `json:"LedgerIndex"`
}

// Count returns how many nodes of nodeType are listed.
func (m *Metadata) Count(nodeType string) int {
	n := 0
	for _, node := range m.AffectedNodes {
		if node.NodeType == nodeType {
			n++
		}
	}
	return n
}
