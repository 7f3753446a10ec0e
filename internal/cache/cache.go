// Package cache is a small LRU used to memoize converted preview
// markup, so retyping or re-entering a mode does not re-run the
// converters on source the composer has already seen.
package cache

import (
	"container/list"
)

type LRU struct {
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

type entry struct {
	key   string
	value string
}

func New(capacity int) *LRU {
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (c *LRU) Get(key string) (string, bool) {
	if ele, hit := c.items[key]; hit {
		c.order.MoveToFront(ele)
		return ele.Value.(*entry).value, true
	}
	return "", false
}

func (c *LRU) Put(key, value string) {
	if ele, hit := c.items[key]; hit {
		c.order.MoveToFront(ele)
		ele.Value.(*entry).value = value
		return
	}

	ele := c.order.PushFront(&entry{key, value})
	c.items[key] = ele

	if c.order.Len() > c.capacity {
		c.removeOldest()
	}
}

func (c *LRU) Len() int {
	return c.order.Len()
}

func (c *LRU) removeOldest() {
	ele := c.order.Back()
	if ele == nil {
		return
	}
	c.order.Remove(ele)
	delete(c.items, ele.Value.(*entry).key)
}
