package router

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/gin-gonic/gin"
)

// APIModule 每个模块负责 /api 下一个前缀的路由
type APIModule interface {
	Prefix() string
	MountAPI(g *gin.RouterGroup)
}

// 模块可选实现 prioritizer 调整挂载顺序（小的先挂，默认 100）
type prioritizer interface{ Priority() int }

// Registry 统一注册器（一个引擎一份，不用全局变量）
type Registry struct {
	mods     []APIModule
	prefixes map[string]struct{}
}

// Register 前缀重复直接 panic（属于装配错误）
func (r *Registry) Register(mods ...APIModule) {
	if r.prefixes == nil {
		r.prefixes = make(map[string]struct{})
	}
	for _, m := range mods {
		if _, dup := r.prefixes[m.Prefix()]; dup {
			panic(fmt.Sprintf("router: prefix %s registered twice", m.Prefix()))
		}
		r.prefixes[m.Prefix()] = struct{}{}
		r.mods = append(r.mods, m)
	}
}

// MountAll 每个模块挂到自己的分组，按挂载顺序返回前缀
func (r *Registry) MountAll(api *gin.RouterGroup) []string {
	mods := slices.Clone(r.mods)
	slices.SortStableFunc(mods, func(a, b APIModule) int {
		return cmp.Compare(priorityOf(a), priorityOf(b))
	})
	mounted := make([]string, 0, len(mods))
	for _, m := range mods {
		m.MountAPI(api.Group(m.Prefix()))
		mounted = append(mounted, m.Prefix())
	}
	return mounted
}

func priorityOf(m APIModule) int {
	if p, ok := m.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
