// Package batch 批量编辑的校验与差异提交协议。
//
// 每个批次操作经过四个状态：Idle → Diffing → Validating →
// (Committing | Rejected) → Idle。与基线快照做全值差异得到变更子集；
// 变更子集逐条校验，任一条失败则整批拒绝（零条提交）；
// 全部通过才把变更子集（而非完整候选集）一次性提交给持久化协作方。
// 持久化层可以部分失败：基线只对确认保存成功的记录前移，
// 失败的记录保留旧基线，下次 Diff 会再次报为变更。
package batch

import (
	"context"
	"encoding/json"
	"fmt"
)

// Record 可参与批量保存的记录
type Record interface {
	RecordID() string
}

// FieldErrors 字段名 → 错误消息
type FieldErrors map[string]string

// Validator 单条记录校验器，返回空map或nil表示通过
type Validator[T Record] func(record T) FieldErrors

// RecordError 持久化层单条失败：Index 指向提交的变更子集中的下标
type RecordError struct {
	Index  int         `json:"index"`
	Errors FieldErrors `json:"errors"`
}

// SaveResult 持久化协作方的结构化结果
type SaveResult struct {
	Saved   int           `json:"saved"`
	Failed  int           `json:"failed"`
	Errors  []RecordError `json:"errors,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Persister 持久化协作方。只会收到差异后的变更子集。
// 返回非nil error 表示连接层面失败，整批视为未提交，基线不前移。
type Persister[T Record] interface {
	SaveChanged(ctx context.Context, records []T) (*SaveResult, error)
}

// Outcome 一次批量保存的结果
type Outcome struct {
	// NothingToSave 差异为空，未调用校验器和持久化协作方
	NothingToSave bool `json:"nothing_to_save"`
	// Rejected 客户端校验未通过：变更子集下标 → 字段错误。
	// 非空时整批被拦下，零条提交。
	Rejected map[int]FieldErrors `json:"rejected,omitempty"`
	// Result 持久化协作方的结果（进入提交阶段后才有）
	Result *SaveResult `json:"result,omitempty"`
}

// Committer 针对一类记录的批量保存协调器。
// 同一实例按批次串行使用；不同批次（如不同销售季）各建各的实例，互不共享。
type Committer[T Record] struct {
	validate  Validator[T]
	persister Persister[T]
	baseline  map[string]string // id → 完整序列化值
}

// NewCommitter 创建协调器，基线为空（所有候选记录都视为新增）。
func NewCommitter[T Record](validate Validator[T], persister Persister[T]) *Committer[T] {
	return &Committer[T]{
		validate:  validate,
		persister: persister,
		baseline:  make(map[string]string),
	}
}

// SetBaseline 用已知的持久化快照重置基线
func (c *Committer[T]) SetBaseline(records []T) {
	c.baseline = make(map[string]string, len(records))
	for _, r := range records {
		c.baseline[r.RecordID()] = serialize(r)
	}
}

// Diff 计算变更子集：序列化值与基线不同的记录，加上基线中不存在的新记录。
// 候选集中缺失而基线存在的记录不视为删除（删除是独立的逐条操作）。
func (c *Committer[T]) Diff(candidate []T) []T {
	var changed []T
	for _, r := range candidate {
		prev, ok := c.baseline[r.RecordID()]
		if !ok || prev != serialize(r) {
			changed = append(changed, r)
		}
	}
	return changed
}

// HasUnsavedChanges 自上次成功提交以来是否存在未保存的变更
func (c *Committer[T]) HasUnsavedChanges(candidate []T) bool {
	return len(c.Diff(candidate)) > 0
}

// Save 执行一次完整的批量保存。
// 提交阶段进入后不可中途取消，持久化调用整体跑完或失败。
func (c *Committer[T]) Save(ctx context.Context, candidate []T) (*Outcome, error) {
	// Diffing
	changed := c.Diff(candidate)
	if len(changed) == 0 {
		return &Outcome{NothingToSave: true}, nil
	}

	// Validating：全部记录都要检查完，错误收集齐了再做决定
	rejected := make(map[int]FieldErrors)
	for i, r := range changed {
		if errs := c.validate(r); len(errs) > 0 {
			rejected[i] = errs
		}
	}
	if len(rejected) > 0 {
		return &Outcome{Rejected: rejected}, nil
	}

	// Committing：只提交变更子集
	result, err := c.persister.SaveChanged(ctx, changed)
	if err != nil {
		return nil, fmt.Errorf("批量保存失败: %w", err)
	}

	// 基线只对确认保存成功的记录前移
	failed := make(map[int]bool, len(result.Errors))
	for _, re := range result.Errors {
		failed[re.Index] = true
	}
	for i, r := range changed {
		if !failed[i] {
			c.baseline[r.RecordID()] = serialize(r)
		}
	}

	return &Outcome{Result: result}, nil
}

func serialize[T Record](r T) string {
	data, err := json.Marshal(r)
	if err != nil {
		// Record 都是普通数据结构，正常不会走到这里
		return fmt.Sprintf("!marshal-error:%v", err)
	}
	return string(data)
}
