package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator 事件 ID 生成器
type Generator interface {
	NextID() string
}

// Node Snowflake 节点，多实例部署时 nodeID 需唯一
type Node struct {
	node *snowflake.Node
}

// NewNode 初始化指定 nodeID 的 Snowflake 节点
func NewNode(nodeID int64) (*Node, error) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("init snowflake node %d failed: %w", nodeID, err)
	}
	return &Node{node: n}, nil
}

func (n *Node) NextID() string {
	return n.node.Generate().String()
}
