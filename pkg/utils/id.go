package utils

import "github.com/google/uuid"

// NewID 生成记录主键（UUIDv4 字符串）
func NewID() string { return uuid.NewString() }
